package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gradecalc/lib/gradebook"
	"gradecalc/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	verbose    *bool
	configPath *string
	historyDb  *string
)

var tel telemetry.Telemetry

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and request dumps.")
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to a config file, by default gradecalc.json5 is searched for upwards from the cwd.")
	historyDb = rootCmd.PersistentFlags().String("db", "", "Record runs into (and read history from) this sqlite file or libsql url.")
}

var rootCmd = &cobra.Command{
	Use:   "gradecalc STUDENT_ID",
	Short: "gradecalc looks up a student's grades on the points page and works out where they stand.",
	Long: `gradecalc fetches the points page, finds the row of the student whose id ends
with STUDENT_ID, averages the grades in it and writes a markdown report.`,
	Args:          identifierArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "gradecalc")
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return calculate(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
	},
}

type usageError struct {
	usage string
}

func (e usageError) Error() string {
	return e.usage
}

// identifierArgs requires exactly one 3-digit argument.
func identifierArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageError{usage: fmt.Sprintf("Usage: %s", cmd.UseLine())}
	}
	return gradebook.ValidateIdentifier(args[0])
}

type notFoundError struct {
	identifier string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("no data found for student ID ending with %s", e.identifier)
}

func (e notFoundError) Unwrap() error {
	return gradebook.ErrNotFound
}

// reportError prints err the way the cli presents it. Usage and lookup
// failures are regular output, anything else goes to stderr.
func reportError(stdout, stderr io.Writer, err error) {
	var usage usageError
	var notFound notFoundError
	switch {
	case errors.As(err, &usage):
		fmt.Fprintln(stdout, usage.usage)
	case errors.As(err, &notFound):
		fmt.Fprintf(stdout, "No data found for student ID ending with %s\n", notFound.identifier)
	default:
		fmt.Fprintf(stderr, "Error: %s\n", err.Error())
	}
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)

	shutdownErr := tel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}

	if err != nil {
		reportError(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
