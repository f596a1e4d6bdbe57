package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mind-engage/brevet-cc/internal/app"
	"github.com/mind-engage/brevet-cc/internal/config"
	"github.com/mind-engage/brevet-cc/internal/grading"
	"github.com/mind-engage/brevet-cc/internal/logging"
)

type options struct {
	tolerance float64
	dpi       int
	pdftoppm  string
	timeout   time.Duration
	logLevel  string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.FromEnv()
	opts := &options{
		tolerance: cfg.ColorTolerance,
		dpi:       cfg.RenderDPI,
		pdftoppm:  cfg.PdftoppmBin,
		timeout:   cfg.RenderTimeout,
		logLevel:  "warn",
	}

	root := &cobra.Command{
		Use:   "brevet",
		Short: "Compute the brevet contrôle continu grade",
		Long: `brevet computes the contrôle continu grade out of 20 from report-card PDFs
(color blocks on page 1, or level symbols in the text) or from levels entered by hand.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Float64Var(&opts.tolerance, "tolerance", opts.tolerance, "RGB distance below which a pixel matches a level color")
	root.PersistentFlags().IntVar(&opts.dpi, "dpi", opts.dpi, "Rendering resolution for page 1")
	root.PersistentFlags().StringVar(&opts.pdftoppm, "pdftoppm", opts.pdftoppm, "Path to the poppler pdftoppm binary")
	root.PersistentFlags().DurationVar(&opts.timeout, "render-timeout", opts.timeout, "Maximum time to render one document")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: debug, info, warn, error")

	root.AddCommand(newPDFCommand(opts))
	root.AddCommand(newManualCommand(opts))
	root.AddCommand(newLevelsCommand())
	return root
}

func (o *options) build(stderr io.Writer) *app.App {
	cfg := config.Config{
		ColorTolerance: o.tolerance,
		RenderDPI:      o.dpi,
		PdftoppmBin:    o.pdftoppm,
		RenderTimeout:  o.timeout,
	}
	log := logging.New(stderr, false, logging.ParseLevel(o.logLevel))
	return app.New(cfg, log, nil)
}

func newPDFCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pdf <semester1.pdf> [semester2.pdf]",
		Short: "Grade one or two report-card PDFs",
		Long: `Grade one or two report-card PDFs. Pass "-" as a path to skip a semester,
e.g. "brevet pdf - s2.pdf".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := make([][]byte, 2)
			for i, path := range args {
				if path == "-" {
					continue
				}
				b, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				docs[i] = b
			}
			a := opts.build(cmd.ErrOrStderr())
			res := a.Aggregator.FromDocuments(cmd.Context(), docs[0], docs[1])
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newManualCommand(opts *options) *cobra.Command {
	var s1, s2 string
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Grade levels entered by hand, eight per semester",
		Long: `Grade levels entered by hand. Each semester takes eight comma-separated
level names, one per competency in this order:
  ` + strings.Join(grading.Competencies[:], ", ") + `
Leave an entry empty to mark it unset (it counts as 0 in the average).`,
		Example: `  brevet manual \
    --s1 "Très bonne maîtrise,Maîtrise satisfaisante,Maîtrise fragile,,,,," \
    --s2 "Très bonne maîtrise,Très bonne maîtrise,Maîtrise fragile,,,,,"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.build(cmd.ErrOrStderr())
			sem1, err := a.Vocab.ParseSemester(splitLevels(s1))
			if err != nil {
				return fmt.Errorf("--s1: %w", err)
			}
			sem2, err := a.Vocab.ParseSemester(splitLevels(s2))
			if err != nil {
				return fmt.Errorf("--s2: %w", err)
			}
			res, err := a.Aggregator.FromManual(sem1, sem2)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&s1, "s1", "", "Semester 1 levels, comma-separated")
	cmd.Flags().StringVar(&s2, "s2", "", "Semester 2 levels, comma-separated")
	return cmd
}

func newLevelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List achievement levels with their points, colors and symbols",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, d := range grading.DefaultVocabulary().Defs() {
				fmt.Fprintf(w, "%-24s %2d pts  rgb(%d,%d,%d) %-12s %s\n",
					d.Name, d.Points, d.Color.R, d.Color.G, d.Color.B, d.ColorLabel, d.Symbol)
			}
		},
	}
}

// splitLevels keeps empty entries: "a,,b" is three levels, the middle unset.
func splitLevels(s string) []string {
	if s == "" {
		return make([]string, grading.CompetencyCount)
	}
	return strings.Split(s, ",")
}

func printResult(w io.Writer, res grading.Result) {
	points, grade := res.Labels()
	fmt.Fprintln(w, points)
	if grade != "" {
		fmt.Fprintln(w, grade)
	}
}
