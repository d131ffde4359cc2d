// Package frame turns raw generated images into print-ready coloring
// pages by covering the template's interior window with the photo and
// keeping the decorative border and watermark on top.
package frame

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	"colormypage/pipeline/internal/prompts"
)

// Page geometry: 8in x 10.5in at 300 DPI with a 0.5in margin and a 10px
// border. Fixed per template; recompute if the physical dimensions change.
const (
	PageWidth  = 2400
	PageHeight = 3150
	Margin     = 150
	Border     = 10

	WindowLeft   = Margin + Border
	WindowTop    = Margin + Border
	WindowWidth  = PageWidth - 2*(Margin+Border)
	WindowHeight = PageHeight - 2*(Margin+Border)
)

// WindowRect is the interior region where photo content shows through.
var WindowRect = image.Rect(WindowLeft, WindowTop, WindowLeft+WindowWidth, WindowTop+WindowHeight)

// Compositor composes photos into a fixed print template. By default it
// punches a transparent hole into a copy of the frame and stacks it above
// the photo, so the border and watermark stay visible even when the
// template's window area is opaque. The overlay mode instead draws the
// photo directly onto the frame; use it only with templates whose window
// is already transparent.
type Compositor struct {
	frame   image.Image
	punched *image.NRGBA
	overlay bool
	log     zerolog.Logger
}

func NewCompositor(framePath string, overlay bool, logger zerolog.Logger) (*Compositor, error) {
	f, err := os.Open(framePath)
	if err != nil {
		return nil, fmt.Errorf("open frame template: %w", err)
	}
	defer f.Close()

	frameImg, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame template: %w", err)
	}

	b := frameImg.Bounds()
	if b.Dx() != PageWidth || b.Dy() != PageHeight {
		return nil, fmt.Errorf("frame template is %dx%d, want %dx%d", b.Dx(), b.Dy(), PageWidth, PageHeight)
	}

	c := &Compositor{
		frame:   frameImg,
		overlay: overlay,
		log:     logger,
	}
	if !overlay {
		c.punched = punchWindow(frameImg)
	}
	return c, nil
}

// punchWindow copies the frame and cuts a fully transparent rectangle
// matching the window geometry.
func punchWindow(frame image.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, PageWidth, PageHeight))
	draw.Draw(out, out.Bounds(), frame, frame.Bounds().Min, draw.Src)
	draw.Draw(out, WindowRect, image.Transparent, image.Point{}, draw.Src)
	return out
}

// coverCrop scales src to fill exactly width x height, center-cropping any
// excess. The result never letterboxes: the source crop rectangle is
// chosen to match the target aspect ratio before scaling.
func coverCrop(src image.Image, width, height int) *image.RGBA {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	cropW := srcW
	cropH := srcW * height / width
	if cropH > srcH {
		cropH = srcH
		cropW = srcH * width / height
	}
	crop := image.Rect(0, 0, cropW, cropH).
		Add(b.Min).
		Add(image.Pt((srcW-cropW)/2, (srcH-cropH)/2))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst
}

// Compose produces a full print page from photo. Deterministic for
// identical inputs.
func (c *Compositor) Compose(photo image.Image) *image.RGBA {
	page := image.NewRGBA(image.Rect(0, 0, PageWidth, PageHeight))
	inner := coverCrop(photo, WindowWidth, WindowHeight)

	if c.overlay {
		draw.Draw(page, page.Bounds(), c.frame, c.frame.Bounds().Min, draw.Src)
		draw.Draw(page, WindowRect, inner, image.Point{}, draw.Over)
		return page
	}

	draw.Draw(page, page.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(page, WindowRect, inner, image.Point{}, draw.Over)
	draw.Draw(page, page.Bounds(), c.punched, c.punched.Bounds().Min, draw.Over)
	return page
}

// ComposeFile reads srcPath, composes it, and writes the page to dstPath
// as PNG.
func (c *Compositor) ComposeFile(srcPath, dstPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	photo, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode photo: %w", err)
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, c.Compose(photo)); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return nil
}

// Summary reports a directory pass.
type Summary struct {
	Composed int
	Failed   []string
}

var composableExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ComposeDir composes every decodable image under srcDir into dstDir,
// naming each output {base}_coloring.png. An existing "_coloring" marker
// in the input name is not doubled, so re-framing a directory of already
// composed pages maps each file onto itself. A file that fails to decode
// is logged and skipped; the pass continues.
func (c *Compositor) ComposeDir(srcDir, dstDir string) (Summary, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read source dir: %w", err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	var summary Summary
	for _, entry := range entries {
		if entry.IsDir() || !composableExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, prompts.PageTitle(entry.Name())+"_coloring.png")

		if err := c.ComposeFile(src, dst); err != nil {
			c.log.Error().Err(err).Str("file", entry.Name()).Msg("compose failed")
			summary.Failed = append(summary.Failed, entry.Name())
			continue
		}
		c.log.Info().Str("page", dst).Msg("page composed")
		summary.Composed++
	}

	return summary, nil
}
