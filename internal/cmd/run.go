package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdg/scriptgate/internal/audit"
	"github.com/xdg/scriptgate/internal/clog"
	"github.com/xdg/scriptgate/internal/invoke"
	"github.com/xdg/scriptgate/internal/runner"
	"github.com/xdg/scriptgate/internal/scriptpath"
	"github.com/xdg/scriptgate/internal/term"
)

var (
	flagStream  bool
	flagVerbose bool
)

var runCmd = &cobra.Command{
	Use:   "run [script-path]",
	Short: "Validate and run the script",
	Long: `Validate the script path and run it with the configured interpreter.

Without an argument the script is looked up in the current directory (or its
parent when run from the host's src-tauri directory).

On success the script's standard output is printed. On failure the message
is printed to stderr and the exit code is 2 for a rejected path, 127 if the
interpreter could not be started, and 1 if the script failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagStream, "stream", false, "print output line by line as it is produced")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print the process id and run time")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := setup(false)
	if err != nil {
		return err
	}

	path, err := scriptArg(args)
	if err != nil {
		return err
	}

	gate, cleanup, err := newGate(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if flagStream {
		return streamScript(ctx, gate, path)
	}

	out := <-gate.InvokeAsync(ctx, path)
	if !out.OK() {
		term.Stderr(out.Message)
		return NewExitCodeError(exitCodeFor(out.Kind))
	}

	term.Print(out.Output)
	if flagVerbose {
		term.Printf("Done in %s\n", audit.FormatDuration(out.Duration, true))
	}
	return nil
}

// scriptArg returns the script path from args, or locates it in the working
// directory.
func scriptArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	path, err := scriptpath.Locate(wd)
	if err != nil {
		return "", err
	}
	clog.Debug("run: located script at %s", path)
	return path, nil
}

func streamScript(ctx context.Context, gate *invoke.Gate, path string) error {
	exitCode := 0
	err := gate.Stream(ctx, path, func(ev runner.Event) {
		switch ev.Type {
		case runner.EventStart:
			if flagVerbose {
				term.Printf("pid: %d\n", ev.PID)
			}
		case runner.EventStdout:
			term.Println(ev.Line)
		case runner.EventStderr:
			term.Stderr(ev.Line)
		case runner.EventClose:
			exitCode = ev.ExitCode
			if flagVerbose {
				term.Printf("command finished with code %d in %s\n", ev.ExitCode, audit.FormatDuration(ev.Duration, true))
			}
		}
	})
	if err != nil {
		term.Stderr(err.Error())
		var rejected *scriptpath.RejectedPathError
		if errors.As(err, &rejected) {
			return NewExitCodeError(ExitRejectedPath)
		}
		return NewExitCodeError(ExitLaunchFailure)
	}
	if exitCode != 0 {
		return NewExitCodeError(ExitProcessFailure)
	}
	return nil
}
