package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/scriptgate/internal/scriptpath"
	"github.com/xdg/scriptgate/internal/term"
)

var flagPatternJSON bool

var checkCmd = &cobra.Command{
	Use:   "check <script-path>",
	Short: "Check a script path against the gate without running it",
	Long: `Check whether a script path would be accepted. Nothing is executed.

Prints "ok" and exits 0 for an accepted path; prints the rejection message
to stderr and exits 2 otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Print the path acceptance pattern",
	Long: `Print the regular expression every script path must match.

Host applications should copy this value into their own validator so both
boundaries enforce the same rule. With --json the output is a validator
entry suitable for a host allowlist.`,
	Args: cobra.NoArgs,
	RunE: runPattern,
}

func init() {
	patternCmd.Flags().BoolVar(&flagPatternJSON, "json", false, "print as a JSON validator entry")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(patternCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	term.SetSilent(flagSilent)

	if err := scriptpath.Validate(args[0]); err != nil {
		term.Stderr(err.Error())
		return NewExitCodeError(ExitRejectedPath)
	}
	term.Println("ok")
	return nil
}

func runPattern(cmd *cobra.Command, args []string) error {
	if !flagPatternJSON {
		term.Println(scriptpath.Pattern)
		return nil
	}

	data, err := json.Marshal(map[string]string{"validator": scriptpath.Pattern})
	if err != nil {
		return fmt.Errorf("failed to encode pattern: %w", err)
	}
	term.Println(string(data))
	return nil
}
