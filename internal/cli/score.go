package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/ingest"
)

var (
	scoreFormat     string
	scoreOutputFile string
)

func newScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Score errors in a single log file",
		Long: `Run the heuristic error scorer over one log file without comparing it
to a baseline. Entries are scored by level severity, error keywords, and
structural patterns, then reported sorted by score.

Examples:
  logdelta score app.log
  logdelta score --format json -o json app.json`,
		Args: cobra.ExactArgs(1),
		RunE: runScore,
	}

	cmd.Flags().StringVarP(&scoreFormat, "format", "f", "", "log format (auto, csv, json, logfmt, text)")
	cmd.Flags().StringVar(&scoreOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	format := ingest.Format(cfg.Ingest.Format)
	if scoreFormat != "" {
		format = ingest.Format(scoreFormat)
	}

	seq, err := ingest.ReadFile(args[0], format, cfg.Ingest.MaxLines)
	if err != nil {
		return fmt.Errorf("failed to read logs: %w", err)
	}

	analysis := analyzer.Analyze(seq)

	// A single scored set renders through the same report pipeline,
	// occupying the green (candidate) slot.
	report := &analyzer.RunReport{Green: analysis}

	output, err := renderReport(report, cfg)
	if err != nil {
		return err
	}

	return writeOutput(output, scoreOutputFile)
}
