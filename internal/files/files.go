// Package files holds the file-system steps of a cleaning run: swapping a
// cleaned temp file into place and moving results into the output directory.
package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Replace puts tmp in place of dst.
//
// By default the original is removed first and tmp renamed afterwards. A
// crash between the two steps leaves only tmp on disk. With atomic set, tmp
// is renamed over dst in one step instead.
func Replace(tmp, dst string, atomic bool) error {
	if atomic {
		if err := os.Rename(tmp, dst); err != nil {
			return fmt.Errorf("rename temp over original: %w", err)
		}
		return nil
	}
	if err := os.Remove(dst); err != nil {
		return fmt.Errorf("remove original: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("rename temp to original: %w", err)
	}
	return nil
}

// Move relocates src into dir under its base name and returns the new path.
// An existing file with that name is overwritten. When a plain rename fails
// (for example across devices) the file is copied and the source removed.
func Move(src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return dst, nil
	}
	if err := copyFile(src, dst); err != nil {
		return "", errors.Join(renameErr, err)
	}
	if err := os.Remove(src); err != nil {
		return dst, fmt.Errorf("remove source after copy: %w", err)
	}
	return dst, nil
}

// Exists reports whether a regular file or directory exists at p.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Size returns the size of the file at p in bytes.
func Size(p string) (int64, error) {
	st, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	st, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, st.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
