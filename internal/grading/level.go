package grading

import (
	"fmt"
	"strings"
)

// Level is one of the four mastery tiers of the socle commun.
// The zero value is Unset and is worth no points.
type Level int

const (
	Unset Level = iota
	VeryGood
	Satisfactory
	Fragile
	Insufficient
)

// Levels lists the real levels in enumeration order. Dominance ties resolve
// to the earliest entry.
var Levels = [...]Level{VeryGood, Satisfactory, Fragile, Insufficient}

func (l Level) Valid() bool { return l >= VeryGood && l <= Insufficient }

func (l Level) String() string {
	switch l {
	case Unset:
		return "unset"
	case VeryGood:
		return "very_good"
	case Satisfactory:
		return "satisfactory"
	case Fragile:
		return "fragile"
	case Insufficient:
		return "insufficient"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Competencies are the eight skill domains of the brevet, in form order.
var Competencies = [CompetencyCount]string{
	"Langue française",
	"Langue étrangère",
	"Mathématiques et sciences",
	"Arts et corps",
	"Méthodes et outils",
	"Citoyenneté",
	"Sciences techniques",
	"Représentation du monde",
}

const (
	CompetencyCount = 8
	MaxLevelPoints  = 50
	MaxTotalPoints  = CompetencyCount * MaxLevelPoints // 400
)

// RGB is an 8-bit color triple.
type RGB struct{ R, G, B uint8 }

// LevelDef binds a level to its point value and its two document encodings.
type LevelDef struct {
	Level      Level
	Points     int
	Name       string // dropdown label
	ColorLabel string
	Color      RGB
	Symbol     string
}

// Vocabulary is the immutable lookup table shared by extractors and the
// aggregator. Build it once and pass it around.
type Vocabulary struct {
	defs     [len(Levels)]LevelDef
	bySymbol map[string]Level
	byName   map[string]Level
	// symbols sorted by decreasing byte length for longest-match scanning.
	symbols  []string
}

// DefaultVocabulary returns the vocabulary used on LSU report cards.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary([]LevelDef{
		{Level: VeryGood, Points: 50, Name: "Très bonne maîtrise", ColorLabel: "dark green", Color: RGB{0, 100, 0}, Symbol: "🟢➕"},
		{Level: Satisfactory, Points: 40, Name: "Maîtrise satisfaisante", ColorLabel: "light green", Color: RGB{144, 238, 144}, Symbol: "🟢"},
		{Level: Fragile, Points: 25, Name: "Maîtrise fragile", ColorLabel: "yellow", Color: RGB{255, 255, 0}, Symbol: "🟡"},
		{Level: Insufficient, Points: 10, Name: "Maîtrise insuffisante", ColorLabel: "orange", Color: RGB{245, 130, 32}, Symbol: "🟠"},
	})
	if err != nil {
		panic(err)
	}
	return v
}

// NewVocabulary validates defs: one entry per level, colors and symbols
// distinct, symbols non-empty.
func NewVocabulary(defs []LevelDef) (*Vocabulary, error) {
	if len(defs) != len(Levels) {
		return nil, fmt.Errorf("vocabulary: want %d levels, got %d", len(Levels), len(defs))
	}
	v := &Vocabulary{
		bySymbol: make(map[string]Level, len(defs)),
		byName:   make(map[string]Level, len(defs)),
	}
	seen := make(map[Level]bool, len(defs))
	colors := make(map[RGB]Level, len(defs))
	for _, d := range defs {
		if !d.Level.Valid() {
			return nil, fmt.Errorf("vocabulary: %w: %v", ErrUnknownLevel, d.Level)
		}
		if seen[d.Level] {
			return nil, fmt.Errorf("vocabulary: duplicate level %v", d.Level)
		}
		if d.Symbol == "" {
			return nil, fmt.Errorf("vocabulary: empty symbol for %v", d.Level)
		}
		if other, ok := colors[d.Color]; ok {
			return nil, fmt.Errorf("vocabulary: color %v shared by %v and %v", d.Color, other, d.Level)
		}
		if other, ok := v.bySymbol[d.Symbol]; ok {
			return nil, fmt.Errorf("vocabulary: symbol %q shared by %v and %v", d.Symbol, other, d.Level)
		}
		seen[d.Level] = true
		colors[d.Color] = d.Level
		v.bySymbol[d.Symbol] = d.Level
		v.byName[normalize(d.Name)] = d.Level
		v.defs[d.Level-1] = d
		v.symbols = append(v.symbols, d.Symbol)
	}
	// insertion sort; four entries
	for i := 1; i < len(v.symbols); i++ {
		for j := i; j > 0 && len(v.symbols[j]) > len(v.symbols[j-1]); j-- {
			v.symbols[j], v.symbols[j-1] = v.symbols[j-1], v.symbols[j]
		}
	}
	return v, nil
}

// Def returns the definition for a real level.
func (v *Vocabulary) Def(l Level) (LevelDef, bool) {
	if !l.Valid() {
		return LevelDef{}, false
	}
	return v.defs[l-1], true
}

// Defs returns all definitions in enumeration order.
func (v *Vocabulary) Defs() []LevelDef {
	out := make([]LevelDef, len(v.defs))
	copy(out, v.defs[:])
	return out
}

// Points returns the point value of l. Unset is worth 0.
func (v *Vocabulary) Points(l Level) (int, error) {
	if l == Unset {
		return 0, nil
	}
	d, ok := v.Def(l)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownLevel, l)
	}
	return d.Points, nil
}

// NearestColor returns the level whose reference color is closest to c,
// provided the distance is strictly below tolerance.
func (v *Vocabulary) NearestColor(c RGB, tolerance float64) (Level, bool) {
	best, bestDist := Unset, tolerance*tolerance
	for _, d := range v.defs {
		if dist := sqDist(c, d.Color); dist < bestDist {
			best, bestDist = d.Level, dist
		}
	}
	return best, best != Unset
}

// LookupSymbol matches a symbol token exactly.
func (v *Vocabulary) LookupSymbol(token string) (Level, bool) {
	l, ok := v.bySymbol[token]
	return l, ok
}

// ParseLevel maps a dropdown label to its level. An empty label is Unset.
func (v *Vocabulary) ParseLevel(name string) (Level, error) {
	n := normalize(name)
	if n == "" {
		return Unset, nil
	}
	if l, ok := v.byName[n]; ok {
		return l, nil
	}
	return Unset, fmt.Errorf("%w: %q", ErrUnknownLevel, strings.TrimSpace(name))
}

func sqDist(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
