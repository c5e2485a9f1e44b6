package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/filedash/filedash/internal/infrastructure/logging"
)

// Service executes dashboard filesystem operations beneath a single
// browse root.
type Service struct {
	root   string
	logger *logging.Logger
}

// NewService creates a filesystem service rooted at root. An empty root
// means the whole filesystem.
func NewService(root string, logger *logging.Logger) *Service {
	if root == "" {
		root = "/"
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Service{root: filepath.Clean(root), logger: logger}
}

// Root returns the browse root all operations are confined to.
func (s *Service) Root() string { return s.root }

// resolve absolutizes p against the browse root and rejects paths that
// escape it.
func (s *Service) resolve(p string) (string, error) {
	if p == "" {
		return "", &AccessError{Path: p, Err: errors.New("empty path")}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.root, p)
	}
	p = filepath.Clean(p)
	if s.root != "/" && p != s.root && !strings.HasPrefix(p, s.root+string(os.PathSeparator)) {
		return "", &AccessError{Path: p, Err: errors.New("outside browse root")}
	}
	return p, nil
}
