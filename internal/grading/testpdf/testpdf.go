// Package testpdf builds tiny single-page PDF documents for tests.
package testpdf

import (
	"bytes"
	"fmt"
)

// Block is a filled rectangle in PDF user space (points, origin bottom-left).
type Block struct {
	X, Y, W, H float64
	R, G, B    uint8
}

// Page describes the content of the only page of a generated document.
type Page struct {
	Width, Height float64
	Blocks        []Block
	// Lines are drawn in Helvetica with WinAnsiEncoding, one per row.
	Lines []string
}

// Solid returns a size×size point page filled with one color.
func Solid(size float64, r, g, b uint8) []byte {
	return Build(Page{Width: size, Height: size, Blocks: []Block{{W: size, H: size, R: r, G: g, B: b}}})
}

// Build serializes p as a PDF 1.4 file with a correct xref table.
func Build(p Page) []byte {
	var content bytes.Buffer
	for _, b := range p.Blocks {
		fmt.Fprintf(&content, "%.6f %.6f %.6f rg %.2f %.2f %.2f %.2f re f\n",
			float64(b.R)/255, float64(b.G)/255, float64(b.B)/255, b.X, b.Y, b.W, b.H)
	}
	if len(p.Lines) > 0 {
		content.WriteString("0 0 0 rg BT /F1 12 Tf\n")
		fmt.Fprintf(&content, "10 %.2f Td\n", p.Height-20)
		for i, l := range p.Lines {
			if i > 0 {
				content.WriteString("0 -14 Td\n")
			}
			fmt.Fprintf(&content, "(%s) Tj\n", escape(l))
		}
		content.WriteString("ET\n")
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>", p.Width, p.Height),
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, o := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}

func escape(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
