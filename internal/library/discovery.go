// Package library finds music files on disk and groups them into the
// clusters the classical fixes run on.
package library

import (
	"os"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/dpetit12345/classical-fixes/internal/tags"
)

// Discover returns the music files named by paths. Directories are walked
// recursively; files are kept when they have a music extension. The result
// is sorted and free of duplicates. Unreadable entries are skipped.
func Discover(fs afero.Fs, paths []string) []string {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if tags.IsMusicFile(path) && !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := fs.Stat(root)
		if err != nil {
			log.Warn().Err(err).Str("path", root).Msg("skipping path")
			continue
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		_ = afero.Walk(fs, root, func(path string, info os.FileInfo, walkErr error) error {
			// Skip any walk errors - intentionally continuing to scan other paths
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if !info.IsDir() {
				add(path)
			}
			return nil
		})
	}

	slices.Sort(files)
	return files
}
