package main

import (
	"github.com/spf13/cobra"

	"colormypage/pipeline/internal/cleaner"
)

var flagCleanDryRun bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete image files from the working directories",
	Long: `Removes image files (png, jpg, jpeg, gif, bmp, webp, svg) from the
raw images, finished pages and staging directories. Other file types are
left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := []string{
			cfg.Paths.ImagesDir,
			cfg.Paths.PagesDir,
			cfg.Paths.StagingDir,
		}

		removed, err := cleaner.Clean(dirs, flagCleanDryRun, logger)
		if err != nil {
			return err
		}

		logger.Info().Int("removed", removed).Bool("dry_run", flagCleanDryRun).Msg("clean complete")
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&flagCleanDryRun, "dry-run", false, "report matches without deleting")
}
