package schedule

import (
	"context"

	"github.com/rs/zerolog"

	"colormypage/pipeline/internal/prompts"
)

// Acquirer produces and persists images for one prompt spec.
type Acquirer interface {
	Acquire(ctx context.Context, spec prompts.Spec, n int, outDir string) ([]string, error)
}

// Runner drives the acquirer across an ordered prompt list under the
// window's pacing. Prompts are processed strictly in input order.
type Runner struct {
	acquirer  Acquirer
	window    *Window
	batchSize int
	outDir    string
	log       zerolog.Logger
}

func NewRunner(acquirer Acquirer, window *Window, batchSize int, outDir string, logger zerolog.Logger) *Runner {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Runner{
		acquirer:  acquirer,
		window:    window,
		batchSize: batchSize,
		outDir:    outDir,
		log:       logger,
	}
}

// Summary reports what a run produced.
type Summary struct {
	Prompts int
	Saved   int
	Skipped int
	Failed  []string
}

// Run processes specs in order, continuing past per-prompt failures.
// A failed prompt simply produces no files; re-runs are safe because
// output names are deterministic.
func (r *Runner) Run(ctx context.Context, specs []prompts.Spec) Summary {
	summary := Summary{Prompts: len(specs)}

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			r.log.Warn().Err(err).Msg("run interrupted")
			break
		}

		key := spec.Slug()
		if key == "" {
			r.log.Error().Str("title", spec.Title).Msg("prompt yields empty slug, skipping")
			summary.Skipped++
			continue
		}

		r.log.Info().Str("slug", key).Int("n", r.batchSize).Msg("generating")
		saved, err := r.acquirer.Acquire(ctx, spec, r.batchSize, r.outDir)
		summary.Saved += len(saved)
		if err != nil {
			r.log.Error().Err(err).Str("slug", key).Msg("generation failed")
			summary.Failed = append(summary.Failed, spec.Title)
		}

		r.window.Record(r.batchSize)
	}

	return summary
}
