// Package cleaner wipes image artifacts from the pipeline's working
// directories between runs.
package cleaner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
}

// Clean removes every image file (by extension allowlist) directly under
// each of dirs. Missing directories are skipped. With dryRun set, matches
// are only counted and logged. Returns the number of files removed (or
// that would be removed).
func Clean(dirs []string, dryRun bool, logger zerolog.Logger) (int, error) {
	removed := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug().Str("dir", dir).Msg("directory absent, skipping")
				continue
			}
			return removed, fmt.Errorf("read dir %s: %w", dir, err)
		}

		count := 0
		for _, entry := range entries {
			if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if !dryRun {
				if err := os.Remove(path); err != nil {
					return removed, fmt.Errorf("remove %s: %w", path, err)
				}
			}
			count++
			removed++
		}
		logger.Info().Str("dir", dir).Int("files", count).Bool("dry_run", dryRun).Msg("cleaned")
	}
	return removed, nil
}
