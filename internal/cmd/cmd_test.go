package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xdg/scriptgate/internal/clog"
	"github.com/xdg/scriptgate/internal/invoke"
	"github.com/xdg/scriptgate/internal/runner"
	"github.com/xdg/scriptgate/internal/server"
	"github.com/xdg/scriptgate/internal/term"
	"github.com/xdg/scriptgate/internal/testutil"
)

// testEnv isolates config, state and output for one CLI test.
type testEnv struct {
	dir    string
	config string
	audit  string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv points every XDG directory at a temp dir and writes a config
// that runs scripts with sh.
func newTestEnv(t *testing.T, interpreter string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	env := &testEnv{
		dir:    dir,
		config: filepath.Join(dir, "scriptgate.yaml"),
		audit:  filepath.Join(dir, "audit.log"),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	cfg := "runner:\n  interpreter: " + interpreter + "\n" +
		"log:\n  file: " + filepath.Join(dir, "scriptgate.log") + "\n" +
		"audit:\n  file: " + env.audit + "\n"
	if err := os.WriteFile(env.config, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	term.SetOutput(env.stdout)
	term.SetErrOutput(env.stderr)
	oldLog := clog.ReplaceGlobal(clog.TestLogger(&bytes.Buffer{}))
	t.Cleanup(func() {
		term.Reset()
		clog.ReplaceGlobal(oldLog)
		resetFlags()
	})
	return env
}

func resetFlags() {
	flagConfig = ""
	flagDebug = false
	flagSilent = false
	flagStream = false
	flagVerbose = false
	flagSocket = ""
	flagPatternJSON = false

	// cobra keeps --help and --version set between Execute calls.
	for _, name := range []string{"help", "version"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
		}
	}
}

// execute runs the root command with the test config prepended.
func (e *testEnv) execute(args ...string) error {
	rootCmd.SetArgs(append([]string{"--config", e.config}, args...))
	defer resetFlags()
	return rootCmd.Execute()
}

func (e *testEnv) script(t *testing.T, body string) string {
	t.Helper()
	return testutil.WriteScript(t, e.dir, body)
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v is not an ExitCodeError", err)
	}
	return exitErr.Code
}

func TestRootCommand_Help(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}

	for _, want := range []string{"scriptgate", "__print_numbers.py", "Usage:", "Available Commands:", "run", "serve"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q\nGot: %s", want, out.String())
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	defer func() {
		rootCmd.SetOut(nil)
		resetFlags()
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if !strings.Contains(out.String(), "scriptgate") {
		t.Errorf("version output missing 'scriptgate'\nGot: %s", out.String())
	}
}

func TestCheck(t *testing.T) {
	env := newTestEnv(t, "sh")

	if err := env.execute("check", "/scripts/foo__print_numbers.py"); err != nil {
		t.Fatalf("check valid path: %v", err)
	}
	if env.stdout.String() != "ok\n" {
		t.Errorf("stdout = %q, want ok", env.stdout.String())
	}

	err := env.execute("check", "__print_numbers.py")
	if code := exitCode(t, err); code != ExitRejectedPath {
		t.Errorf("exit code = %d, want %d", code, ExitRejectedPath)
	}
	want := "Provided Python script path does not match expected filename! Got: __print_numbers.py\n"
	if env.stderr.String() != want {
		t.Errorf("stderr = %q, want %q", env.stderr.String(), want)
	}
}

func TestPattern(t *testing.T) {
	env := newTestEnv(t, "sh")

	if err := env.execute("pattern"); err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if env.stdout.String() != `\S+__print_numbers[.]py$`+"\n" {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	env.stdout.Reset()
	if err := env.execute("pattern", "--json"); err != nil {
		t.Fatalf("pattern --json: %v", err)
	}
	if env.stdout.String() != `{"validator":"\\S+__print_numbers[.]py$"}`+"\n" {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRun_Success(t *testing.T) {
	env := newTestEnv(t, "sh")
	script := env.script(t, "echo 1\necho 2\necho 3\n")

	if err := env.execute("run", script); err != nil {
		t.Fatalf("run: %v", err)
	}
	if env.stdout.String() != "1\n2\n3\n" {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	audit, err := os.ReadFile(env.audit)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	if !strings.Contains(string(audit), "SCRIPT COMPLETE") {
		t.Errorf("audit log missing COMPLETE:\n%s", audit)
	}
}

func TestRun_Verbose(t *testing.T) {
	env := newTestEnv(t, "sh")
	script := env.script(t, "echo hi\n")

	if err := env.execute("run", "-v", script); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(env.stdout.String(), "hi\nDone in ") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRun_ProcessFailure(t *testing.T) {
	env := newTestEnv(t, "sh")
	script := env.script(t, "printf boom >&2\nexit 3\n")

	err := env.execute("run", script)
	if code := exitCode(t, err); code != ExitProcessFailure {
		t.Errorf("exit code = %d, want %d", code, ExitProcessFailure)
	}
	if env.stderr.String() != "Error: boom\n" {
		t.Errorf("stderr = %q, want %q", env.stderr.String(), "Error: boom\n")
	}
}

func TestRun_RejectedPath(t *testing.T) {
	env := newTestEnv(t, "sh")

	err := env.execute("run", "/scripts/other.py")
	if code := exitCode(t, err); code != ExitRejectedPath {
		t.Errorf("exit code = %d, want %d", code, ExitRejectedPath)
	}
	if !strings.Contains(env.stderr.String(), "Got: /scripts/other.py") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRun_MissingInterpreter(t *testing.T) {
	env := newTestEnv(t, "this-interpreter-definitely-does-not-exist")
	script := env.script(t, "echo hi\n")

	err := env.execute("run", script)
	if code := exitCode(t, err); code != ExitLaunchFailure {
		t.Errorf("exit code = %d, want %d", code, ExitLaunchFailure)
	}
	if env.stderr.Len() == 0 || strings.HasPrefix(env.stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want launch error without 'Error: ' prefix", env.stderr.String())
	}
}

func TestRun_LocatesScript(t *testing.T) {
	env := newTestEnv(t, "sh")
	env.script(t, "echo located\n")
	buildDir := filepath.Join(env.dir, "src-tauri")
	if err := os.Mkdir(buildDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	chdir(t, buildDir)

	if err := env.execute("run"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if env.stdout.String() != "located\n" {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRun_LocateFails(t *testing.T) {
	env := newTestEnv(t, "sh")
	chdir(t, t.TempDir())

	err := env.execute("run")
	if err == nil || !strings.Contains(err.Error(), "Failed to find Python script") {
		t.Errorf("run error = %v, want script not found", err)
	}
}

func TestRun_Stream(t *testing.T) {
	env := newTestEnv(t, "sh")
	script := env.script(t, "echo 1\necho warn >&2\necho 2\nexit 4\n")

	err := env.execute("run", "--stream", script)
	if code := exitCode(t, err); code != ExitProcessFailure {
		t.Errorf("exit code = %d, want %d", code, ExitProcessFailure)
	}
	if env.stdout.String() != "1\n2\n" {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	if env.stderr.String() != "warn\n" {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRun_StreamRejected(t *testing.T) {
	env := newTestEnv(t, "sh")

	err := env.execute("run", "--stream", "nope.py")
	if code := exitCode(t, err); code != ExitRejectedPath {
		t.Errorf("exit code = %d, want %d", code, ExitRejectedPath)
	}
}

func TestRun_Silent(t *testing.T) {
	env := newTestEnv(t, "sh")
	script := env.script(t, "echo hidden\n")

	if err := env.execute("run", "--silent", script); err != nil {
		t.Fatalf("run: %v", err)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty with --silent", env.stdout.String())
	}
}

func TestCall_ThroughServer(t *testing.T) {
	env := newTestEnv(t, "sh")
	script := env.script(t, "echo served\n")
	sock := filepath.Join(testutil.ShortTempDir(t), "sg.sock")

	srv := server.New(sock, invoke.New(runner.NewProcessRunner("sh")))
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	if err := env.execute("call", "--socket", sock, script); err != nil {
		t.Fatalf("call: %v", err)
	}
	if env.stdout.String() != "served\n" {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	err := env.execute("call", "--socket", sock, "/tmp/other.py")
	if code := exitCode(t, err); code != ExitRejectedPath {
		t.Errorf("exit code = %d, want %d", code, ExitRejectedPath)
	}
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t, "sh")

	if err := env.execute("config", "path"); err != nil {
		t.Fatalf("config path: %v", err)
	}
	if env.stdout.String() != env.config+"\n" {
		t.Errorf("stdout = %q, want %q", env.stdout.String(), env.config+"\n")
	}
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t, "sh")

	if err := env.execute("config", "show"); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "interpreter: sh") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t, "sh")

	rootCmd.SetArgs([]string{"config", "init"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	path := filepath.Join(env.dir, "config", "scriptgate", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not created at %s: %v", path, err)
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
