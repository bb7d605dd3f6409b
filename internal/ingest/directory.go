// Package ingest discovers appraisal report PDFs, either by a one-shot
// directory scan or by watching a directory for new arrivals.
package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/auctionkit/appraisal-extractor/constants"
)

// ScanDirectory walks root and returns the report PDFs found, in walk order.
// Hidden entries are skipped, as are directories named like extraction
// output so re-running over a processed tree does not pick up rendered
// artifacts.
func ScanDirectory(root string, skipDirs ...string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	skip := map[string]struct{}{"photos": {}}
	for _, d := range skipDirs {
		skip[d] = struct{}{}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		base := filepath.Base(path)
		if d.IsDir() {
			if path != root {
				if strings.HasPrefix(base, ".") {
					return filepath.SkipDir
				}
				if _, ok := skip[base]; ok {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.HasPrefix(base, ".") {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
