package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tally/internal/model"
	"github.com/verte-zerg/tally/internal/store"
	"github.com/verte-zerg/tally/internal/textfmt"
)

const defaultHistoryLast = 20

var (
	historyLast int
	historyRun  int64
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded counter runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N runs (0 for all)")
	cmd.Flags().Int64Var(&historyRun, "run", 0, "show per-source counts of one run")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(historyPath(fileCfg))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if historyRun > 0 {
		sources, err := st.ListRunSources(ctx, historyRun)
		if err != nil {
			return fmt.Errorf("failed to load run %d: %w", historyRun, err)
		}
		if len(sources) == 0 {
			return fmt.Errorf("no run with id %d", historyRun)
		}
		return writeLines(cmd.OutOrStdout(), sourceTable(sources))
	}

	runs, err := st.ListRuns(ctx, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	if len(runs) == 0 {
		logErrln("No runs recorded. Enable with [history] enabled = true (tally config).")
		return nil
	}
	lines := runTable(runs)
	if len(runs) > 1 {
		lines = append(lines, "", "words trend: "+wordsTrend(runs))
	}
	return writeLines(cmd.OutOrStdout(), lines)
}

func wordsTrend(runs []model.RunSummary) string {
	values := make([]float64, len(runs))
	for i, run := range runs {
		values[i] = float64(run.Total.Words)
	}
	return textfmt.Sparkline(values)
}

func runTable(runs []model.RunSummary) []string {
	headers := []string{"ID", "STARTED", "MODE", "UNIT", "SOURCES", "LINES", "WORDS", "COUNT"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.RunID, 10),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Mode,
			run.Unit,
			strconv.Itoa(run.Sources),
			strconv.Itoa(run.Total.Lines),
			strconv.Itoa(run.Total.Words),
			strconv.Itoa(run.Total.Bytes),
		})
	}
	return textfmt.Table(headers, rows, []textfmt.Align{
		textfmt.Right, textfmt.Left, textfmt.Left, textfmt.Left,
		textfmt.Right, textfmt.Right, textfmt.Right, textfmt.Right,
	})
}

func sourceTable(sources []model.SourceCounts) []string {
	headers := []string{"LINES", "WORDS", "COUNT", "SOURCE"}
	rows := make([][]string, 0, len(sources))
	for _, src := range sources {
		rows = append(rows, []string{
			strconv.Itoa(src.Lines),
			strconv.Itoa(src.Words),
			strconv.Itoa(src.Bytes),
			src.Label,
		})
	}
	return textfmt.Table(headers, rows, []textfmt.Align{textfmt.Right, textfmt.Right, textfmt.Right, textfmt.Left})
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
