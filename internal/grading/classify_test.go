package grading_test

import (
	"context"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mind-engage/brevet-cc/internal/grading"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestClassifier(r grading.Rasterizer, te grading.TextExtractor, rec grading.Recorder) *grading.Classifier {
	opts := []grading.Option{grading.WithLogger(quietLogger())}
	if r != nil {
		opts = append(opts, grading.WithRasterizer(r))
	}
	if te != nil {
		opts = append(opts, grading.WithTextExtractor(te))
	}
	if rec != nil {
		opts = append(opts, grading.WithRecorder(rec))
	}
	return grading.NewClassifier(grading.DefaultVocabulary(), opts...)
}

func TestClassify_ColorWins(t *testing.T) {
	v := grading.DefaultVocabulary()
	raster := &fakeRaster{images: map[string]image.Image{"doc": solid(v.Defs()[1].Color, 8, 8)}}
	text := &fakeText{texts: map[string]string{"doc": "🟠🟠🟠🟠🟠🟠"}}
	c := newTestClassifier(raster, text, nil)

	s := c.Classify(context.Background(), []byte("doc"))
	assert.Equal(t, grading.Score{Points: 40, Level: grading.Satisfactory, Source: grading.SourceColor}, s)
	assert.Zero(t, text.calls, "symbol extraction must not run after a color match")
}

func TestClassify_FallsBackToSymbols(t *testing.T) {
	raster := &fakeRaster{images: map[string]image.Image{"doc": solid(white, 8, 8)}}
	text := &fakeText{texts: map[string]string{"doc": "🟡 🟡 🟠"}}
	c := newTestClassifier(raster, text, nil)

	s := c.Classify(context.Background(), []byte("doc"))
	assert.Equal(t, grading.Score{Points: 25, Level: grading.Fragile, Source: grading.SourceSymbol}, s)
	assert.Equal(t, 1, raster.calls)
	assert.Equal(t, 1, text.calls)
}

func TestClassify_RenderFailureFallsBack(t *testing.T) {
	rec := &fakeRecorder{}
	raster := &fakeRaster{images: map[string]image.Image{}}
	text := &fakeText{texts: map[string]string{"doc": "🟢➕"}}
	c := newTestClassifier(raster, text, rec)

	s := c.Classify(context.Background(), []byte("doc"))
	assert.Equal(t, 50, s.Points)
	assert.Equal(t, grading.SourceSymbol, s.Source)
	assert.Equal(t, []string{"render"}, rec.failures)
	assert.Equal(t, []grading.Source{grading.SourceSymbol}, rec.sources)
}

func TestClassify_NothingDetected(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestClassifier(&fakeRaster{}, &fakeText{}, rec)

	s := c.Classify(context.Background(), []byte("corrupt"))
	assert.Equal(t, 0, s.Points)
	assert.False(t, s.Resolved())
	assert.Equal(t, []string{"render", "text"}, rec.failures)

	s = c.Classify(context.Background(), nil)
	assert.False(t, s.Resolved())
}

func TestClassify_WithoutRasterizer(t *testing.T) {
	c := newTestClassifier(nil, &fakeText{texts: map[string]string{"doc": "🟠"}}, nil)
	assert.Equal(t, 10, c.Classify(context.Background(), []byte("doc")).Points)
}

func TestClassify_Idempotent(t *testing.T) {
	v := grading.DefaultVocabulary()
	img := solid(white, 10, 10)
	fill(img, image.Rect(0, 0, 10, 3), v.Defs()[0].Color)
	fill(img, image.Rect(0, 5, 10, 8), v.Defs()[2].Color) // tie with dark green
	c := newTestClassifier(&fakeRaster{images: map[string]image.Image{"doc": img}}, &fakeText{}, nil)

	first := c.Classify(context.Background(), []byte("doc"))
	assert.Equal(t, grading.VeryGood, first.Level)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(context.Background(), []byte("doc")))
	}
}

func TestClassify_ToleranceOption(t *testing.T) {
	img := solid(grading.RGB{R: 0, G: 150, B: 0}, 4, 4) // 50 away from dark green
	raster := &fakeRaster{images: map[string]image.Image{"doc": img}}

	strict := newTestClassifier(raster, &fakeText{}, nil)
	assert.False(t, strict.Classify(context.Background(), []byte("doc")).Resolved())

	loose := grading.NewClassifier(grading.DefaultVocabulary(),
		grading.WithRasterizer(raster),
		grading.WithTolerance(80),
		grading.WithLogger(quietLogger()),
	)
	assert.Equal(t, 50, loose.Classify(context.Background(), []byte("doc")).Points)
}
