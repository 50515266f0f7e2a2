package jslint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/mpyw/nextcall/internal/config"
)

// Discover expands paths into the sorted, de-duplicated list of files to
// lint. Directories are walked recursively, skipping excluded names and files
// without a configured extension. Files named explicitly are always kept.
func Discover(cfg *config.Config, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("discover: %w", err)
		}

		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && cfg.Excluded(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && cfg.MatchesExtension(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
	}

	// Deterministic order
	slices.Sort(files)

	return slices.Compact(files), nil
}
