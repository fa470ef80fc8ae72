// Package cmd implements the CLI commands for scriptgate.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/scriptgate/internal/version"
)

var (
	flagConfig string
	flagDebug  bool
	flagSilent bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scriptgate",
	Short: "Run the bundled numbers script behind a path gate",
	Long: `scriptgate lets a host application run one external Python script and
get its output back.

Only paths ending in __print_numbers.py are ever handed to the interpreter.
The same rule is enforced by the host; scriptgate repeats it so a bypass of
one boundary does not bypass the other.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/scriptgate/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagSilent, "silent", "s", false, "suppress normal output")
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}
