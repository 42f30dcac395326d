package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Discover lists every PDF under cfg.Root in walk order, or sorted when
// cfg.SortPaths is set. Unreadable directories are skipped.
func Discover(cfg Config) ([]string, error) {
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("source directory: %s is not a directory", cfg.Root)
	}
	var paths []string
	err = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !isPDF(d.Name()) {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cfg.SortPaths {
		sort.Strings(paths)
	}
	return paths, nil
}
