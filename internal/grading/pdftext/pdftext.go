// Package pdftext reads the text layer of PDF documents.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Extractor concatenates the plain text of every page, in page order.
type Extractor struct {
	// MaxPages caps how many pages are read; 0 reads them all.
	MaxPages int
}

func New() *Extractor { return &Extractor{} }

// ExtractText returns the NFC-normalized text of pdf. Malformed input is
// reported as an error; parser panics are recovered.
func (e *Extractor) ExtractText(ctx context.Context, doc []byte) (text string, err error) {
	if len(doc) == 0 {
		return "", errors.New("empty document")
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parse: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", fmt.Errorf("pdf open: %w", err)
	}
	n := r.NumPage()
	if e.MaxPages > 0 && n > e.MaxPages {
		n = e.MaxPages
	}
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(s)
	}
	return norm.NFC.String(sb.String()), nil
}
