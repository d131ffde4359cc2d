package main

import (
	"time"

	"github.com/spf13/cobra"

	"colormypage/pipeline/internal/frame"
)

var (
	flagFrameIn      string
	flagFrameOut     string
	flagFrameFile    string
	flagFrameOverlay bool
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Composite raw images onto the print template",
	Long: `Cover-crops every image in the input directory into the template's
interior window and layers the frame's border and watermark on top,
producing {name}_coloring.png print pages.

The default mode punches a transparent hole into a copy of the template so
the border stays visible even when the template's window area is opaque.
--overlay instead draws the photo directly onto the template; only use it
with templates whose window is already transparent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srcDir := flagFrameIn
		if srcDir == "" {
			srcDir = cfg.Paths.ImagesDir
		}
		dstDir := flagFrameOut
		if dstDir == "" {
			dstDir = cfg.Paths.PagesDir
		}
		framePath := flagFrameFile
		if framePath == "" {
			framePath = cfg.Paths.FrameFile
		}

		compositor, err := frame.NewCompositor(framePath, flagFrameOverlay, logger)
		if err != nil {
			return err
		}

		started := time.Now()
		summary, err := compositor.ComposeDir(srcDir, dstDir)
		if err != nil {
			return err
		}

		logger.Info().
			Int("composed", summary.Composed).
			Strs("failed", summary.Failed).
			Dur("elapsed", time.Since(started)).
			Msg("framing run complete")
		return nil
	},
}

func init() {
	frameCmd.Flags().StringVar(&flagFrameIn, "in", "", "input directory (default: images dir from config)")
	frameCmd.Flags().StringVar(&flagFrameOut, "out", "", "output directory (default: pages dir from config)")
	frameCmd.Flags().StringVar(&flagFrameFile, "frame", "", "frame template file (default from config)")
	frameCmd.Flags().BoolVar(&flagFrameOverlay, "overlay", false, "draw photo over the template instead of punching the window")
}
