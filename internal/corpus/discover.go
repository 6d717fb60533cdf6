package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension selects ground truth files during directory walks
const DefaultExtension = ".txt"

// DiscoverOptions controls Discover
type DiscoverOptions struct {
	// Extension of files collected from directories; files named
	// explicitly are always taken.
	Extension string
}

// skipDirs are never descended into
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

// Discover expands paths into a sorted, de-duplicated list of files.
// Directories are searched recursively for files with the extension.
func Discover(paths []string, opts DiscoverOptions) ([]string, error) {
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			// HasSuffix rather than Ext so ".gt.txt" works
			if strings.HasSuffix(strings.ToLower(d.Name()), strings.ToLower(ext)) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
