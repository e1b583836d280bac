package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"gradecalc/lib/gradebook"
	"gradecalc/lib/gradestore"
	"gradecalc/lib/htmlutil"
	"gradecalc/lib/reportfile"
	"gradecalc/lib/restyutil"
	"gradecalc/lib/scrapers/points"
	"gradecalc/lib/timezone"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer        = otel.Tracer("gradecalc")
	meter         = otel.Meter("gradecalc")
	runCounter, _ = meter.Int64Counter(
		"gradecalc.runs",
		metric.WithDescription("Number of completed grade calculations by outcome."),
	)
)

var (
	urlFlag    *string
	outputFlag *string
	htmlFlag   *string
)

func init() {
	urlFlag = rootCmd.Flags().String("url", "", "The points page to fetch.")
	outputFlag = rootCmd.Flags().StringP("output", "o", "", "The markdown file the report is written to.")
	htmlFlag = rootCmd.Flags().String("html", "", "Also render the report as html into this file.")
}

func newPointsClient(cfg Config) points.Client {
	opts := points.ClientOptions{
		Url:              cfg.Url,
		Timeout:          cfg.Timeout(),
		CloudflareBypass: cfg.CloudflareBypass,
	}
	if *verbose && cfg.DumpDir != "" {
		dumps, err := restyutil.NewFilesystemOutput(filepath.Join(cfg.DumpDir, "points"))
		if err != nil {
			slog.Warn("request dumps disabled", "dir", cfg.DumpDir, "err", err)
		} else {
			opts.Dumps = dumps
		}
	}
	return points.NewClient(opts)
}

func printRow(w io.Writer, row gradebook.Row) {
	fmt.Fprintln(w, "Found student row:")
	t := newTable(w)
	t.AppendHeader(table.Row{"Cell", "Text"})
	for i, cell := range row {
		t.AppendRow(table.Row{i, htmlutil.CleanText(cell)})
	}
	t.Render()
}

// calculate runs a whole lookup for id and writes the report, progress is
// printed to w.
func calculate(ctx context.Context, cfg Config, id string, w io.Writer) error {
	ctx, span := tracer.Start(ctx, "calculate")
	defer span.End()
	span.SetAttributes(attribute.String("identifier", id))

	err := gradebook.ValidateIdentifier(id)
	if err != nil {
		return err
	}

	client := newPointsClient(cfg)
	rows, err := client.FetchRows(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "fetch failed")
		return err
	}
	slog.DebugContext(ctx, "fetched points table", "url", client.Url, "rows", len(rows))

	row, ok := gradebook.Locate(rows, id)
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return notFoundError{identifier: id}
	}
	printRow(w, row)

	grades := gradebook.Extract(row)
	fmt.Fprintf(w, "Extracted grades: %s\n", gradebook.FormatGrades(grades))

	report := gradebook.NewReport(id, grades)
	markdown := report.Markdown()

	out := reportfile.Writer{Path: cfg.Output}
	err = out.Reset()
	if err != nil {
		return fmt.Errorf("clear %s: %w", cfg.Output, err)
	}
	err = out.Append(markdown)
	if err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	contents, err := out.Contents()
	if err != nil {
		return fmt.Errorf("read back %s: %w", cfg.Output, err)
	}
	fmt.Fprintln(w, contents)
	fmt.Fprintf(w, "Results saved to %s\n", cfg.Output)

	if cfg.HtmlOutput != "" {
		err = reportfile.WriteHTML(cfg.HtmlOutput, markdown)
		if err != nil {
			return fmt.Errorf("write %s: %w", cfg.HtmlOutput, err)
		}
		fmt.Fprintf(w, "HTML report saved to %s\n", cfg.HtmlOutput)
	}

	outcome := gradebook.NoGradesResult
	mean := 0.0
	classification, err := gradebook.Classify(grades)
	if err == nil {
		outcome = classification.Outcome.String()
		mean = classification.Mean
	}
	runCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	slog.DebugContext(ctx, "classified", "identifier", id, "grades", len(grades), "outcome", outcome)

	if cfg.HistoryDb != "" {
		err = recordRun(ctx, cfg.HistoryDb, gradestore.Run{
			Identifier: id,
			Grades:     grades,
			Mean:       mean,
			Outcome:    outcome,
			Time:       timezone.Now(),
		})
		if err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}

	return nil
}

func recordRun(ctx context.Context, dsn string, run gradestore.Run) error {
	store, err := gradestore.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err = store.Push(ctx, run)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "recorded run", "id", run.Id, "db", dsn)
	return nil
}
