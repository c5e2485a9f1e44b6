package fs

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// List returns the entries of dir with all directories ahead of all
// files. Within each group the filesystem's own enumeration order is
// kept; neither group is re-sorted.
func (s *Service) List(dir string) ([]Entry, error) {
	path, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &AccessError{Path: dir, Err: err}
	}
	defer f.Close()

	// File.ReadDir, unlike os.ReadDir, does not sort by name.
	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, &AccessError{Path: dir, Err: err}
	}

	dirs := make([]Entry, 0, len(dirents))
	var files []Entry
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			// Entry vanished between readdir and stat; drop it.
			s.logger.Debug("skipping unstattable entry",
				zap.String("dir", path), zap.String("name", d.Name()))
			continue
		}
		e := Entry{
			Name:     d.Name(),
			Path:     filepath.Join(path, d.Name()),
			IsDir:    d.IsDir(),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Created:  createdTime(info),
		}
		if e.IsDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}

	return append(dirs, files...), nil
}
