package grading

import (
	"context"
	"image"
	"log/slog"
	"time"
)

// Rasterizer renders the first page of a PDF.
type Rasterizer interface {
	RenderFirstPage(ctx context.Context, pdf []byte) (image.Image, error)
}

// Recorder observes classifications. internal/metrics implements it.
type Recorder interface {
	ObserveClassification(source Source, elapsed time.Duration)
	ObserveDocumentFailure(stage string)
}

// Score is the outcome of classifying one semester's document.
type Score struct {
	Points int
	Level  Level
	Source Source
}

func (s Score) Resolved() bool { return s.Source != SourceNone }

// Classifier options

type Option func(*config)

type config struct {
	Tolerance float64
	Raster    Rasterizer
	Text      TextExtractor
	Logger    *slog.Logger
	Recorder  Recorder
}

func WithTolerance(t float64) Option           { return func(c *config) { c.Tolerance = t } }
func WithRasterizer(r Rasterizer) Option       { return func(c *config) { c.Raster = r } }
func WithTextExtractor(t TextExtractor) Option { return func(c *config) { c.Text = t } }
func WithLogger(l *slog.Logger) Option         { return func(c *config) { c.Logger = l } }
func WithRecorder(r Recorder) Option           { return func(c *config) { c.Recorder = r } }

// Classifier turns one PDF into a single dominant level. Color blocks on
// page 1 are tried first; the text layer is only read when no color matched.
type Classifier struct {
	vocab  *Vocabulary
	color  ColorExtractor
	symbol SymbolExtractor
	raster Rasterizer
	log    *slog.Logger
	rec    Recorder
}

func NewClassifier(v *Vocabulary, opts ...Option) *Classifier {
	cfg := &config{Tolerance: DefaultTolerance}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Classifier{
		vocab:  v,
		color:  NewColorExtractor(v, cfg.Tolerance),
		symbol: NewSymbolExtractor(v, cfg.Text),
		raster: cfg.Raster,
		log:    cfg.Logger,
		rec:    cfg.Recorder,
	}
}

// Classify never fails: unreadable documents are logged and score 0.
func (c *Classifier) Classify(ctx context.Context, pdf []byte) Score {
	start := time.Now()
	s := c.classify(ctx, pdf)
	if c.rec != nil {
		c.rec.ObserveClassification(s.Source, time.Since(start))
	}
	return s
}

func (c *Classifier) classify(ctx context.Context, pdf []byte) Score {
	if len(pdf) == 0 {
		return Score{Source: SourceNone}
	}

	if c.raster != nil {
		img, err := c.raster.RenderFirstPage(ctx, pdf)
		if err != nil {
			c.fail("render", err)
		} else if m := c.color.Extract(img); m.OK() {
			c.log.Debug("document classified by color", "level", m.Level, "counts", m.Counts)
			return c.score(m.Level, SourceColor)
		}
	}

	m, err := c.symbol.Extract(ctx, pdf)
	if err != nil {
		c.fail("text", err)
		return Score{Source: SourceNone}
	}
	if m.OK() {
		c.log.Debug("document classified by symbol", "level", m.Level, "counts", m.Counts)
		return c.score(m.Level, SourceSymbol)
	}
	c.log.Info("no color or symbol detected in document", "bytes", len(pdf))
	return Score{Source: SourceNone}
}

func (c *Classifier) score(l Level, src Source) Score {
	d, _ := c.vocab.Def(l)
	return Score{Points: d.Points, Level: l, Source: src}
}

func (c *Classifier) fail(stage string, err error) {
	c.log.Warn("document extraction failed", "stage", stage, "err", err)
	if c.rec != nil {
		c.rec.ObserveDocumentFailure(stage)
	}
}
