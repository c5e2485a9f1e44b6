package http

// MakeDirRequest creates a directory tree.
type MakeDirRequest struct {
	Path string `json:"path" binding:"required"`
}

// WriteFileRequest creates or overwrites a file.
type WriteFileRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

// TransferRequest copies or moves a file.
type TransferRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// WorkdirRequest changes a session's working directory.
type WorkdirRequest struct {
	Path string `json:"path" binding:"required"`
}
