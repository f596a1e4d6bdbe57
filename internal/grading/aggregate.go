package grading

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NoResultLabel is shown in place of the points when no document yielded a
// signal.
const NoResultLabel = "Aucun résultat détecté"

// Semester holds one selected level per competency, in Competencies order.
type Semester [CompetencyCount]Level

// Result is a computed grade. Detected is false when no document produced a
// signal, which is distinct from a legitimate grade of zero.
type Result struct {
	TotalPoints int
	Grade       float64
	Detected    bool
}

// Labels formats the result as "<points> / 400" and "<grade> / 20".
func (r Result) Labels() (points, grade string) {
	if !r.Detected {
		return NoResultLabel, ""
	}
	return fmt.Sprintf("%d / %d", r.TotalPoints, MaxTotalPoints), formatGrade(r.Grade) + " / 20"
}

// DocumentClassifier is satisfied by *Classifier.
type DocumentClassifier interface {
	Classify(ctx context.Context, pdf []byte) Score
}

// Aggregator combines per-semester scores into a grade out of 20.
type Aggregator struct {
	vocab      *Vocabulary
	classifier DocumentClassifier
}

func NewAggregator(v *Vocabulary, c DocumentClassifier) *Aggregator {
	return &Aggregator{vocab: v, classifier: c}
}

// FromDocuments grades one report card per semester. A nil or empty
// document is absent and is left out of the average; a present document
// that resolves to nothing still averages in as 0.
func (a *Aggregator) FromDocuments(ctx context.Context, sem1, sem2 []byte) Result {
	var (
		sum     int
		present int
	)
	for _, doc := range [][]byte{sem1, sem2} {
		if len(doc) == 0 {
			continue
		}
		present++
		sum += a.classifier.Classify(ctx, doc).Points
	}
	if present == 0 || sum == 0 {
		return Result{}
	}
	avg := float64(sum) / float64(present)
	total := int(math.Round(avg * CompetencyCount))
	return Result{TotalPoints: total, Grade: gradeOutOf20(total), Detected: true}
}

// FromManual grades dropdown selections. Each competency scores the mean of
// its two semesters; an Unset entry counts as 0 and still halves the other
// semester's points. The final sum is truncated, not rounded.
func (a *Aggregator) FromManual(sem1, sem2 Semester) (Result, error) {
	var total float64
	for i := range sem1 {
		p1, err := a.vocab.Points(sem1[i])
		if err != nil {
			return Result{}, fmt.Errorf("semester 1, %s: %w", Competencies[i], err)
		}
		p2, err := a.vocab.Points(sem2[i])
		if err != nil {
			return Result{}, fmt.Errorf("semester 2, %s: %w", Competencies[i], err)
		}
		total += float64(p1+p2) / 2
	}
	points := int(total)
	return Result{TotalPoints: points, Grade: gradeOutOf20(points), Detected: true}, nil
}

// ParseSemester maps exactly eight dropdown labels to levels.
func (v *Vocabulary) ParseSemester(names []string) (Semester, error) {
	var s Semester
	if len(names) != CompetencyCount {
		return s, fmt.Errorf("%w: got %d", ErrSemesterSize, len(names))
	}
	for i, n := range names {
		l, err := v.ParseLevel(n)
		if err != nil {
			return s, fmt.Errorf("%s: %w", Competencies[i], err)
		}
		s[i] = l
	}
	return s, nil
}

func gradeOutOf20(total int) float64 {
	g := float64(total) / MaxTotalPoints * 20
	return math.Round(g*100) / 100
}

// formatGrade prints the shortest decimal form with at least one fractional
// digit: 20 -> "20.0", 11.25 -> "11.25".
func formatGrade(g float64) string {
	s := strconv.FormatFloat(g, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
