package grading_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/mind-engage/brevet-cc/internal/grading"
)

func solid(c grading.RGB, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{c.R, c.G, c.B, 255})
		}
	}
	return img
}

// fill paints the rectangle r of img with c.
func fill(img *image.RGBA, r image.Rectangle, c grading.RGB) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, color.RGBA{c.R, c.G, c.B, 255})
		}
	}
}

var white = grading.RGB{R: 255, G: 255, B: 255}

// fakeRaster serves a fixed image per document body.
type fakeRaster struct {
	images map[string]image.Image
	calls  int
}

func (f *fakeRaster) RenderFirstPage(_ context.Context, pdf []byte) (image.Image, error) {
	f.calls++
	img, ok := f.images[string(pdf)]
	if !ok {
		return nil, errors.New("not a pdf")
	}
	return img, nil
}

// fakeText serves a fixed text layer per document body.
type fakeText struct {
	texts map[string]string
	calls int
}

func (f *fakeText) ExtractText(_ context.Context, pdf []byte) (string, error) {
	f.calls++
	s, ok := f.texts[string(pdf)]
	if !ok {
		return "", errors.New("malformed pdf")
	}
	return s, nil
}

type fakeRecorder struct {
	mu       sync.Mutex
	sources  []grading.Source
	failures []string
}

func (r *fakeRecorder) ObserveClassification(s grading.Source, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, s)
}

func (r *fakeRecorder) ObserveDocumentFailure(stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, stage)
}
