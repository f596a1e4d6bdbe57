package grading

// Source records which signal resolved a document.
type Source string

const (
	SourceNone   Source = "none"
	SourceColor  Source = "color"
	SourceSymbol Source = "symbol"
)

// Counts holds per-level match counts (pixels or symbol occurrences),
// indexed in enumeration order.
type Counts [len(Levels)]int

func (c Counts) Of(l Level) int {
	if !l.Valid() {
		return 0
	}
	return c[l-1]
}

func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Match is the outcome of one extractor. Level is Unset when nothing matched.
type Match struct {
	Level  Level
	Counts Counts
}

func (m Match) OK() bool { return m.Level != Unset }

// dominant picks the level with the highest count. Ties go to the first
// level in enumeration order; all-zero counts yield no match.
func dominant(c Counts) Match {
	m := Match{Counts: c}
	best := 0
	for i, n := range c {
		if n > best {
			best = n
			m.Level = Levels[i]
		}
	}
	return m
}
