package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Search walks the subtree under q.Root and returns the absolute paths
// of files matching both filters. Unreadable subtrees are skipped and
// simply omitted from the results rather than aborting the search. The
// walk is parallel, so result order is unspecified.
func (s *Service) Search(ctx context.Context, q Query) ([]string, error) {
	root, err := s.resolve(q.Root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, &AccessError{Path: q.Root, Err: err}
	}
	if !info.IsDir() {
		return nil, &AccessError{Path: q.Root, Err: errors.New("not a directory")}
	}

	substr := strings.ToLower(q.NameContains)
	ext := strings.ToLower(strings.TrimPrefix(q.Extension, "."))

	var mu sync.Mutex
	matches := []string{}
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}
		if !matchName(d.Name(), substr, ext) {
			return nil
		}

		mu.Lock()
		matches = append(matches, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		// A cancelled request is not a path problem.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &AccessError{Path: q.Root, Err: err}
	}

	return matches, nil
}

// matchName applies both filters against the lowercased filename.
func matchName(base, substr, ext string) bool {
	lower := strings.ToLower(base)
	if substr != "" && !strings.Contains(lower, substr) {
		return false
	}
	if ext != "" && !strings.HasSuffix(lower, "."+ext) {
		return false
	}
	return true
}

// Glob returns files under dir matching pattern. Patterns use
// gitignore-style syntax, including ** for arbitrary depth.
func (s *Service) Glob(dir, pattern string) ([]string, error) {
	root, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, &AccessError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &AccessError{Path: dir, Err: errors.New("not a directory")}
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
	if err != nil {
		return nil, &IOError{Op: "glob", Path: dir, Err: err}
	}
	if matches == nil {
		matches = []string{}
	}
	return matches, nil
}
