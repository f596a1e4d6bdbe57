package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mind-engage/brevet-cc/internal/grading"
)

// GradeObserver counts grade requests. *metrics.Metrics implements it.
type GradeObserver interface {
	ObserveGrade(mode, outcome string)
}

// Grading serves the two grading modes over HTTP.
type Grading struct {
	Vocab          *grading.Vocabulary
	Aggregator     *grading.Aggregator
	MaxUploadBytes int64
	Observer       GradeObserver // optional
	Log            *slog.Logger
}

type gradeResponse struct {
	ID          string  `json:"id"`
	PointsLabel string  `json:"points_label"`
	GradeLabel  string  `json:"grade_label"`
	TotalPoints int     `json:"total_points"`
	Grade       float64 `json:"grade"`
	Detected    bool    `json:"detected"`
}

type manualGradeReq struct {
	Semester1 []string `json:"semester1"`
	Semester2 []string `json:"semester2"`
}

type levelView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Color  string `json:"color"`
	RGB    [3]int `json:"rgb"`
	Symbol string `json:"symbol"`
}

const (
	fieldSemester1 = "semester1"
	fieldSemester2 = "semester2"
)

func MountGrading(r chi.Router, g *Grading) {
	r.Post("/grade/pdf", g.GradePDFHandler())
	r.Post("/grade/manual", g.GradeManualHandler())
	r.Get("/levels", g.ListLevelsHandler())
	r.Get("/competencies", ListCompetenciesHandler())
}

// POST /grade/pdf  (multipart: semester1, semester2; both optional)
func (g *Grading) GradePDFHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if g.MaxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, g.MaxUploadBytes)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "multipart form required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		sem1, err := formFileBytes(r, fieldSemester1)
		if err != nil {
			http.Error(w, "read "+fieldSemester1+": "+err.Error(), http.StatusBadRequest)
			return
		}
		sem2, err := formFileBytes(r, fieldSemester2)
		if err != nil {
			http.Error(w, "read "+fieldSemester2+": "+err.Error(), http.StatusBadRequest)
			return
		}

		res := g.Aggregator.FromDocuments(r.Context(), sem1, sem2)
		outcome := "graded"
		if !res.Detected {
			outcome = "no_result"
		}
		g.observe("pdf", outcome)
		g.respond(w, "pdf", res)
	}
}

// POST /grade/manual
func (g *Grading) GradeManualHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manualGradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			g.observe("manual", "invalid")
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		sem1, err := g.Vocab.ParseSemester(req.Semester1)
		if err != nil {
			g.observe("manual", "invalid")
			http.Error(w, "semester1: "+err.Error(), http.StatusBadRequest)
			return
		}
		sem2, err := g.Vocab.ParseSemester(req.Semester2)
		if err != nil {
			g.observe("manual", "invalid")
			http.Error(w, "semester2: "+err.Error(), http.StatusBadRequest)
			return
		}
		res, err := g.Aggregator.FromManual(sem1, sem2)
		if err != nil {
			g.observe("manual", "invalid")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g.observe("manual", "graded")
		g.respond(w, "manual", res)
	}
}

// GET /levels
func (g *Grading) ListLevelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs := g.Vocab.Defs()
		out := make([]levelView, 0, len(defs))
		for _, d := range defs {
			out = append(out, levelView{
				ID:     d.Level.String(),
				Name:   d.Name,
				Points: d.Points,
				Color:  d.ColorLabel,
				RGB:    [3]int{int(d.Color.R), int(d.Color.G), int(d.Color.B)},
				Symbol: d.Symbol,
			})
		}
		writeJSON(w, out)
	}
}

// GET /competencies
func ListCompetenciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, grading.Competencies[:])
	}
}

func (g *Grading) respond(w http.ResponseWriter, mode string, res grading.Result) {
	points, grade := res.Labels()
	resp := gradeResponse{
		ID:          uuid.NewString(),
		PointsLabel: points,
		GradeLabel:  grade,
		TotalPoints: res.TotalPoints,
		Grade:       res.Grade,
		Detected:    res.Detected,
	}
	if g.Log != nil {
		g.Log.Info("grade computed", "id", resp.ID, "mode", mode, "points", res.TotalPoints, "detected", res.Detected)
	}
	writeJSON(w, resp)
}

func (g *Grading) observe(mode, outcome string) {
	if g.Observer != nil {
		g.Observer.ObserveGrade(mode, outcome)
	}
}

// formFileBytes returns nil when the field was not sent.
func formFileBytes(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
