package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"colormypage/pipeline/internal/genai"
	"colormypage/pipeline/internal/prompts"
	"colormypage/pipeline/internal/schedule"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate raw images for every configured prompt",
	Long: `Reads the prompt document and requests images for each prompt in
order, pacing calls against the generation service's quota. Images land in
the raw images directory named by slug; a failed prompt is logged and
skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := prompts.Load(promptPath())
		if err != nil {
			return err
		}
		specs := doc.Specs()
		if len(specs) == 0 {
			return fmt.Errorf("prompt document %s names no prompts", promptPath())
		}

		// Document fields override service configuration where present.
		gcfg := cfg.GenAI
		if doc.Model != "" {
			gcfg.Model = doc.Model
		}
		if doc.Size != "" {
			gcfg.Size = doc.Size
		}
		if doc.Quality != "" {
			gcfg.Quality = doc.Quality
		}
		batchSize := gcfg.BatchSize
		if doc.BatchSize > 0 {
			batchSize = doc.BatchSize
		}
		outDir := cfg.Paths.ImagesDir
		if doc.OutDir != "" {
			outDir = doc.OutDir
		}
		maxPerWindow := cfg.RateLimit.MaxPerWindow
		if doc.MaxPerWindow > 0 {
			maxPerWindow = doc.MaxPerWindow
		}
		window := cfg.RateLimit.Window
		if doc.WindowMs > 0 {
			window = time.Duration(doc.WindowMs) * time.Millisecond
		}

		client, err := genai.NewClient(gcfg, logger)
		if err != nil {
			return err
		}

		started := time.Now()
		runner := schedule.NewRunner(client, schedule.NewWindow(maxPerWindow, window), batchSize, outDir, logger)
		summary := runner.Run(cmd.Context(), specs)

		logger.Info().
			Int("prompts", summary.Prompts).
			Int("saved", summary.Saved).
			Int("skipped", summary.Skipped).
			Strs("failed", summary.Failed).
			Dur("elapsed", time.Since(started)).
			Msg("generation run complete")
		return nil
	},
}
