package grading

import (
	"context"
	"strings"
)

// TextExtractor returns the concatenated text of every page of a PDF.
type TextExtractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

// SymbolExtractor counts level symbols in the text layer of a document.
type SymbolExtractor struct {
	vocab *Vocabulary
	text  TextExtractor
}

func NewSymbolExtractor(v *Vocabulary, te TextExtractor) SymbolExtractor {
	return SymbolExtractor{vocab: v, text: te}
}

// Count scans text once, left to right, taking the longest symbol that
// matches at each position. Matches never overlap, and a composite symbol
// such as 🟢➕ is not also counted as 🟢.
func (e SymbolExtractor) Count(text string) Counts {
	var c Counts
	for i := 0; i < len(text); {
		matched := false
		for _, sym := range e.vocab.symbols {
			if strings.HasPrefix(text[i:], sym) {
				l := e.vocab.bySymbol[sym]
				c[l-1]++
				i += len(sym)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return c
}

// Extract pulls the text layer out of pdf and returns its dominant symbol.
// A document that cannot be read is reported as no match together with the
// cause, so callers can log it.
func (e SymbolExtractor) Extract(ctx context.Context, pdf []byte) (Match, error) {
	if e.text == nil || len(pdf) == 0 {
		return Match{}, nil
	}
	text, err := e.text.ExtractText(ctx, pdf)
	if err != nil {
		return Match{}, err
	}
	return dominant(e.Count(text)), nil
}
