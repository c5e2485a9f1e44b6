package fs

import (
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Stat returns detailed metadata for a file or directory.
func (s *Service) Stat(target string) (*Info, error) {
	path, err := s.resolve(target)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &AccessError{Path: target, Err: err}
	}

	return &Info{
		Name:      info.Name(),
		Path:      path,
		Size:      info.Size(),
		SizeHuman: formatBytes(info.Size()),
		IsDir:     info.IsDir(),
		Mode:      info.Mode().String(),
		Modified:  info.ModTime(),
		Created:   createdTime(info),
		Accessed:  accessTime(info),
	}, nil
}

// ReadPreview reads a file and classifies it for display. Binary
// content is withheld; the UI shows the MIME type instead.
func (s *Service) ReadPreview(file string) (*Preview, error) {
	data, err := s.ReadFile(file)
	if err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(data)
	p := &Preview{
		Path: file,
		MIME: mtype.String(),
		Text: isTextMIME(mtype.String()),
		Size: len(data),
	}
	if p.Text {
		p.Content = string(data)
	}
	return p, nil
}

func isTextMIME(mime string) bool {
	return strings.HasPrefix(mime, "text/") ||
		mime == "application/json" ||
		mime == "application/xml" ||
		mime == "application/javascript"
}

// formatBytes renders a size the way the dashboard displays it.
func formatBytes(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}
