// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"mplace/internal/cli"
	"mplace/internal/version"
	"mplace/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// env carries the streams of one invocation into the commands.
type env struct {
	stdout, stderr io.Writer
	// started is set once a command body runs; errors before that are
	// usage errors raised by cobra itself.
	started bool
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "mplace",
		Short: "Place chains of PSSM recognizers on DNA",
		Long: `
Find the highest-scoring placement of an ordered chain of position-specific
scoring matrices joined by variable-length connectors on one DNA sequence.`,
		Version:                    version.Version,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRun: func(*cobra.Command, []string) {
			e.started = true
		},
	}
	root.SetVersionTemplate("mplace version {{.Version}}\n")
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Usagef("%v", err)
	})
	cli.RegisterCommon(root.PersistentFlags())

	root.AddCommand(newPlaceCmd(e), newResultsCmd(e), newConvertCmd(e), newVersionCmd(e))
	return root
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(e.stdout, "mplace version %s\n", version.Version)
			return err
		},
	}
}

// RunContext executes the command line and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	e := &env{stdout: stdout, stderr: stderr}
	root := newRootCmd(e)
	if argv == nil {
		argv = []string{} // nil makes cobra read os.Args
	}
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	return exitCode(err, e, root)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exitCode(err error, e *env, root *cobra.Command) int {
	switch {
	case err == nil:
		return ExitOK
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case cli.IsUsage(err) || !e.started:
		_, _ = fmt.Fprintf(e.stderr, "error: %v\n", err)
		_, _ = fmt.Fprintf(e.stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		return ExitUsage
	default:
		_, _ = fmt.Fprintf(e.stderr, "error: %v\n", err)
		return ExitRuntime
	}
}
