package commands

import (
	"errors"
	"fmt"
	"io"

	"gradecalc/lib/gradebook"
	"gradecalc/lib/gradestore"
	"gradecalc/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var errNoHistoryDb = errors.New("no history database configured, set history_db or pass --db")

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [STUDENT_ID]",
	Short: "Lists previously recorded calculations, optionally only those of one student.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return usageError{usage: fmt.Sprintf("Usage: %s", cmd.UseLine())}
		}
		if len(args) == 1 {
			return gradebook.ValidateIdentifier(args[0])
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.HistoryDb == "" {
			return errNoHistoryDb
		}

		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		store, err := gradestore.Open(cmd.Context(), cfg.HistoryDb)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), id)
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), runs)
		return nil
	},
}

func printHistory(w io.Writer, runs []gradestore.Run) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Time", "Student", "Grades", "Average", "Outcome"})
	for _, run := range runs {
		average := "-"
		if len(run.Grades) > 0 {
			average = fmt.Sprintf("%.2f", run.Mean)
		}
		t.AppendRow(table.Row{
			timezone.Format(run.Time),
			run.Identifier,
			gradebook.FormatGrades(run.Grades),
			average,
			run.Outcome,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Runs", len(runs)})
	t.Render()
}
