// Package main provides the colormypage CLI, the offline batch toolchain
// behind the ColorMyPage site: it generates coloring-page images, frames
// them onto the print template, and uploads the finished pages with their
// metadata CSVs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"colormypage/pipeline/internal/config"
	"colormypage/pipeline/internal/ids"
	"colormypage/pipeline/internal/log"
)

var (
	// flagConfigFile is set by the --config flag.
	flagConfigFile string

	// flagPromptFile overrides the prompt document path from config.
	flagPromptFile string

	// cfg and logger are initialized on startup for all subcommands.
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "colormypage",
	Short: "Batch pipeline for generating, framing and publishing coloring pages",
	Long: `colormypage drives the three stages of the coloring-page pipeline:

  generate  request images for every configured prompt, rate-limited
  frame     composite raw images onto the print template
  upload    push finished pages to object storage and emit metadata CSVs

Each stage reads from and writes to fixed working directories, so stages
can be re-run independently; output names are deterministic slugs and
re-runs overwrite in place.`,
	PersistentPreRunE: initPipeline,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagPromptFile, "prompts", "", "prompt document (default from config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(cleanCmd)
}

// initPipeline loads .env and config and builds the run-scoped logger.
func initPipeline(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	_ = godotenv.Load()

	c, err := config.Load(flagConfigFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	logger = log.New(cfg.Logging.Level).With().
		Str("run_id", ids.New()).
		Logger()
	return nil
}

// promptPath resolves the prompt document location: flag wins over config.
func promptPath() string {
	if flagPromptFile != "" {
		return flagPromptFile
	}
	return cfg.Paths.PromptFile
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
