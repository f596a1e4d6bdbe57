// Package app wires the grading core to its PDF collaborators.
package app

import (
	"log/slog"

	"github.com/mind-engage/brevet-cc/internal/config"
	"github.com/mind-engage/brevet-cc/internal/grading"
	"github.com/mind-engage/brevet-cc/internal/grading/pdftext"
	"github.com/mind-engage/brevet-cc/internal/grading/render"
)

type App struct {
	Vocab      *grading.Vocabulary
	Classifier *grading.Classifier
	Aggregator *grading.Aggregator
}

// New builds the grading pipeline from cfg. rec may be nil.
func New(cfg config.Config, log *slog.Logger, rec grading.Recorder) *App {
	vocab := grading.DefaultVocabulary()
	raster := &render.Pdftoppm{
		Binary:  cfg.PdftoppmBin,
		DPI:     cfg.RenderDPI,
		Timeout: cfg.RenderTimeout,
	}
	opts := []grading.Option{
		grading.WithTolerance(cfg.ColorTolerance),
		grading.WithRasterizer(raster),
		grading.WithTextExtractor(pdftext.New()),
		grading.WithLogger(log),
	}
	if rec != nil {
		opts = append(opts, grading.WithRecorder(rec))
	}
	c := grading.NewClassifier(vocab, opts...)
	return &App{
		Vocab:      vocab,
		Classifier: c,
		Aggregator: grading.NewAggregator(vocab, c),
	}
}
