package fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// MakeDir creates dir and any missing parents. Creating a directory
// that already exists is not an error.
func (s *Service) MakeDir(dir string) error {
	path, err := s.resolve(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	s.logger.Info("directory created", zap.String("path", path))
	return nil
}

// WriteFile writes content to file, replacing any existing content.
func (s *Service) WriteFile(file string, content []byte) error {
	path, err := s.resolve(file)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return &IOError{Op: "write", Path: file, Err: err}
	}
	s.logger.Info("file written", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}

// ReadFile returns the content of file.
func (s *Service) ReadFile(file string) ([]byte, error) {
	path, err := s.resolve(file)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil, &AccessError{Path: file, Err: err}
		}
		return nil, &IOError{Op: "read", Path: file, Err: err}
	}
	return data, nil
}

// Remove deletes a single file or empty directory.
func (s *Service) Remove(target string) error {
	path, err := s.resolve(target)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return &AccessError{Path: target, Err: err}
		}
		return &IOError{Op: "remove", Path: target, Err: err}
	}
	s.logger.Info("removed", zap.String("path", path))
	return nil
}

// RemoveAll deletes target and everything beneath it. Unlike
// os.RemoveAll, a missing target is an error so the UI can report it.
func (s *Service) RemoveAll(target string) error {
	path, err := s.resolve(target)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return &AccessError{Path: target, Err: err}
	}
	if err := os.RemoveAll(path); err != nil {
		return &IOError{Op: "remove", Path: target, Err: err}
	}
	s.logger.Info("removed recursively", zap.String("path", path))
	return nil
}

// Delete removes target the way the dashboard's delete form does:
// files are always removed, directories only when empty unless
// recursive is set.
func (s *Service) Delete(target string, recursive bool) error {
	path, err := s.resolve(target)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return &AccessError{Path: target, Err: err}
	}
	if info.IsDir() && recursive {
		return s.RemoveAll(target)
	}
	return s.Remove(target)
}

// Copy copies the file at src to dst, preserving mode and modification
// time. When dst is an existing directory the copy lands inside it
// under the source's name.
func (s *Service) Copy(src, dst string) error {
	srcPath, err := s.resolve(src)
	if err != nil {
		return err
	}
	dstPath, err := s.resolve(dst)
	if err != nil {
		return err
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return &AccessError{Path: src, Err: err}
	}
	if info.IsDir() {
		return &IOError{Op: "copy", Path: src, Err: os.ErrInvalid}
	}
	if di, err := os.Stat(dstPath); err == nil && di.IsDir() {
		dstPath = filepath.Join(dstPath, filepath.Base(srcPath))
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return &AccessError{Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dstPath)
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}

	// copy2 semantics: carry mode and mtime over to the copy.
	if err := os.Chmod(dstPath, info.Mode().Perm()); err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}
	if err := os.Chtimes(dstPath, time.Now(), info.ModTime()); err != nil {
		return &IOError{Op: "copy", Path: dst, Err: err}
	}

	s.logger.Info("copied", zap.String("source", srcPath), zap.String("destination", dstPath))
	return nil
}

// Move renames src to dst. When dst is an existing directory the
// source moves inside it under its own name.
func (s *Service) Move(src, dst string) error {
	srcPath, err := s.resolve(src)
	if err != nil {
		return err
	}
	dstPath, err := s.resolve(dst)
	if err != nil {
		return err
	}

	if _, err := os.Stat(srcPath); err != nil {
		return &AccessError{Path: src, Err: err}
	}
	if di, err := os.Stat(dstPath); err == nil && di.IsDir() {
		dstPath = filepath.Join(dstPath, filepath.Base(srcPath))
	}

	if err := os.Rename(srcPath, dstPath); err != nil {
		return &IOError{Op: "move", Path: src, Err: err}
	}

	s.logger.Info("moved", zap.String("source", srcPath), zap.String("destination", dstPath))
	return nil
}
