package grading

import "image"

// DefaultTolerance is the RGB distance below which a pixel counts as a
// reference color.
const DefaultTolerance = 40.0

// ColorExtractor counts pixels close to each level's reference color.
type ColorExtractor struct {
	vocab     *Vocabulary
	tolerance float64
}

func NewColorExtractor(v *Vocabulary, tolerance float64) ColorExtractor {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return ColorExtractor{vocab: v, tolerance: tolerance}
}

// Count returns, for every level, the number of pixels whose Euclidean
// distance to its reference color is strictly below the tolerance. A pixel
// may count for several levels when the tolerance is wide enough.
func (e ColorExtractor) Count(img image.Image) Counts {
	var c Counts
	if img == nil {
		return c
	}
	defs := e.vocab.defs
	limit := e.tolerance * e.tolerance
	tally := func(p RGB) {
		for i := range defs {
			if sqDist(p, defs[i].Color) < limit {
				c[i]++
			}
		}
	}

	b := img.Bounds()
	switch m := img.(type) {
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Pix[m.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				tally(RGB{row[4*x], row[4*x+1], row[4*x+2]})
			}
		}
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Pix[m.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				tally(RGB{row[4*x], row[4*x+1], row[4*x+2]})
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				tally(RGB{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)})
			}
		}
	}
	return c
}

// Extract returns the dominant level of img, or no match when no pixel is
// close to any reference color.
func (e ColorExtractor) Extract(img image.Image) Match {
	return dominant(e.Count(img))
}
