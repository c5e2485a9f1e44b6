// Package fs implements the dashboard's filesystem operations.
//
// The package is organized by concern:
//   - lister: directory listing with directories ordered before files
//   - search: recursive filename search and glob matching
//   - operations: create, delete, copy, and move
//   - metadata: stat, content previews, and size formatting
//
// Every operation is a single synchronous call into the OS. There is no
// transactionality and no retry: a call either fully succeeds or fails
// with the OS error wrapped as *AccessError or *IOError, which the HTTP
// layer surfaces to the UI unchanged.
package fs
