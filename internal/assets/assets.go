// Package assets keeps product images under the application root.
package assets

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store copies images into Dir and hands out paths relative to Root,
// which is what product rows keep.
type Store struct {
	Root string
	Dir  string
}

func NewStore(root, dir string) *Store {
	return &Store{Root: root, Dir: dir}
}

// ImportIfAbsent copies src into the store under its base name unless a file with
// that name is already there. A missing source yields ("", false) and no error.
func (s *Store) ImportIfAbsent(src string) (string, bool, error) {
	if src == "" {
		return "", false, nil
	}
	if _, err := os.Stat(src); err != nil {
		return "", false, nil
	}
	dst := filepath.Join(s.Dir, filepath.Base(src))
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		if err := copyFile(src, dst); err != nil {
			return "", false, err
		}
	}
	rel, err := s.rel(dst)
	if err != nil {
		return "", false, err
	}
	return rel, true, nil
}

// Put copies src into the store under its base name, replacing any existing file.
// A src already inside Dir is returned as is.
func (s *Store) Put(src string) (string, error) {
	if rel, ok := s.Rel(src); ok {
		if _, err := os.Stat(s.Abs(rel)); err != nil {
			return "", errors.Wrapf(err, "stat %s", src)
		}
		return rel, nil
	}
	dst := filepath.Join(s.Dir, filepath.Base(src))
	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return s.rel(dst)
}

// Remove deletes the image at rel (relative to Root). Paths outside Dir are left
// alone. Failures are logged and ignored.
func (s *Store) Remove(rel string) {
	if rel == "" {
		return
	}
	if _, ok := s.Rel(rel); !ok {
		zap.L().Warn("not removing file outside the image directory", zap.String("path", rel))
		return
	}
	p := s.Abs(rel)
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("failed to remove product image", zap.String("path", p), zap.Error(err))
	}
}

// Abs resolves a stored relative path
func (s *Store) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Rel returns the stored form of path when it resolves to a file inside Dir.
// Relative paths are taken relative to Root.
func (s *Store) Rel(path string) (string, bool) {
	if strings.TrimSpace(path) == "" {
		return "", false
	}
	abs, err := filepath.Abs(s.Abs(path))
	if err != nil {
		return "", false
	}
	dir, err := filepath.Abs(s.Dir)
	if err != nil {
		return "", false
	}
	sub, err := filepath.Rel(dir, abs)
	if err != nil || sub == "." || sub == ".." || strings.HasPrefix(sub, ".."+string(filepath.Separator)) {
		return "", false
	}
	rel, err := s.rel(abs)
	if err != nil {
		return "", false
	}
	return rel, true
}

func (s *Store) rel(dst string) (string, error) {
	rootAbs, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "resolve assets root")
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return "", errors.Wrap(err, "resolve asset path")
	}
	rel, err := filepath.Rel(rootAbs, dstAbs)
	if err != nil {
		return "", errors.Wrap(err, "relative asset path")
	}
	return filepath.ToSlash(rel), nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(err, "create assets dir")
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copy %s", src)
	}
	return errors.Wrapf(out.Close(), "close %s", dst)
}
