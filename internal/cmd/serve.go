package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xdg/scriptgate/internal/clog"
	"github.com/xdg/scriptgate/internal/config"
	"github.com/xdg/scriptgate/internal/server"
	"github.com/xdg/scriptgate/internal/term"
)

var flagSocket string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve script invocations on a Unix socket",
	Long: `Listen on a Unix socket and run the script for each request.

Each connection sends one JSON line {"path": "..."} and receives one JSON
line {"ok": true, "output": "..."} or {"ok": false, "kind": "...", "error": "..."}.
Paths are validated exactly as for 'scriptgate run'.

Runs until interrupted. Logs go to the configured log file only.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var callCmd = &cobra.Command{
	Use:   "call <script-path>",
	Short: "Ask a running 'scriptgate serve' to run the script",
	Args:  cobra.ExactArgs(1),
	RunE:  runCall,
}

func init() {
	serveCmd.Flags().StringVar(&flagSocket, "socket", "", "socket path (overrides server.socket)")
	callCmd.Flags().StringVar(&flagSocket, "socket", "", "socket path (overrides server.socket)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(callCmd)
}

func socketPath(cfg *config.Config) string {
	if flagSocket != "" {
		return config.ExpandHome(flagSocket)
	}
	return cfg.Server.Socket
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup(true)
	if err != nil {
		return err
	}
	defer clog.Close()

	gate, cleanup, err := newGate(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(socketPath(cfg), gate)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	term.Printf("Listening on %s\n", srv.SocketPath())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		clog.Info("serve: received %s, shutting down", sig)
	case <-cmd.Context().Done():
	}
	signal.Stop(sigChan)

	if err := srv.Stop(); err != nil {
		clog.Warn("serve: error during shutdown: %v", err)
	}
	return nil
}

func runCall(cmd *cobra.Command, args []string) error {
	cfg, err := setup(false)
	if err != nil {
		return err
	}

	out, err := server.NewClient(socketPath(cfg)).Invoke(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	if !out.OK() {
		term.Stderr(out.Message)
		return NewExitCodeError(exitCodeFor(out.Kind))
	}
	term.Print(out.Output)
	return nil
}
