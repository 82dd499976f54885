package harness

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindScenarios returns every .yaml and .yml file under dir, at any depth,
// sorted by path. Files under a golden/ directory are skipped.
//
// A non-empty filter is matched against the file name without extension;
// it may use doublestar glob syntax (e.g. "gen*", "{valid,syll}*").
func FindScenarios(dir, filter string) ([]string, error) {
	if filter != "" && !doublestar.ValidatePattern(filter) {
		return nil, fmt.Errorf("invalid filter pattern: %q", filter)
	}

	pattern := filepath.Join(dir, "**", "*.{yaml,yml}")
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, path := range matches {
		if rel, err := filepath.Rel(dir, path); err == nil && inGoldenDir(rel) {
			continue
		}
		if filter != "" {
			base := filepath.Base(path)
			name := strings.TrimSuffix(base, filepath.Ext(base))
			ok, err := doublestar.Match(filter, name)
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !ok {
				continue
			}
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}

func inGoldenDir(rel string) bool {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, p := range parts[:len(parts)-1] {
		if p == "golden" {
			return true
		}
	}
	return false
}
