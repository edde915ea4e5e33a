package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

func startServer(t *testing.T) string {
	t.Helper()
	cfg := redisserver.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	srv := redisserver.New(cfg, memory.New(), nil, logger.Discard())
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

type result struct {
	stdout, stderr string
	err            error
}

// runApp runs the CLI with an isolated config file and no history.
func runApp(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return runAppWithConfig(t, filepath.Join(t.TempDir(), "cli.yaml"), stdin, args...)
}

func runAppWithConfig(t *testing.T, configPath, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	full := append([]string{"respkv-cli", "--config", configPath, "--history", ""}, args...)
	err := app.Run(full)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestApp(t *testing.T) {
	app := App()
	if app.Name != "respkv-cli" {
		t.Errorf("Name = %q, want %q", app.Name, "respkv-cli")
	}
	if app.Version == "" {
		t.Error("Version should not be empty")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	for _, name := range []string{"ping", "config"} {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}

	flagNames := make(map[string]bool)
	for _, flag := range app.Flags {
		flagNames[flag.Names()[0]] = true
	}
	for _, name := range []string{"server", "output", "timeout", "config", "latency", "history"} {
		if !flagNames[name] {
			t.Errorf("missing required flag: %s", name)
		}
	}
}

func TestGetSettings_Defaults(t *testing.T) {
	app := App()
	ctx := cli.NewContext(app, nil, nil)
	s := GetSettings(ctx)
	if s.Addr != "localhost:6379" {
		t.Errorf("Addr = %q, want localhost:6379", s.Addr)
	}
	if GetConnectionManager(ctx) != nil {
		t.Error("no manager should exist before Before runs")
	}
}

// ============================================================================
// One-shot mode
// ============================================================================

func TestApp_OneShot(t *testing.T) {
	addr := startServer(t)

	r := runApp(t, "", "-s", addr, "SET", "hello", "world")
	if r.err != nil {
		t.Fatalf("SET error = %v", r.err)
	}
	if r.stdout != "OK\n" {
		t.Errorf("SET output = %q, want OK", r.stdout)
	}

	r = runApp(t, "", "-s", addr, "GET", "hello")
	if r.err != nil {
		t.Fatalf("GET error = %v", r.err)
	}
	if r.stdout != "\"world\"\n" {
		t.Errorf("GET output = %q", r.stdout)
	}

	// Arguments after the command are not parsed as flags.
	r = runApp(t, "", "-s", addr, "ECHO", "-o")
	if r.err != nil || r.stdout != "\"-o\"\n" {
		t.Errorf("ECHO -o = %q, %v", r.stdout, r.err)
	}
}

func TestApp_OneShot_Formats(t *testing.T) {
	addr := startServer(t)
	if r := runApp(t, "", "-s", addr, "HSET", "h", "hello", "world"); r.err != nil {
		t.Fatalf("HSET error = %v", r.err)
	}

	r := runApp(t, "", "-s", addr, "-o", "json", "HGETALL", "h")
	if r.err != nil {
		t.Fatalf("HGETALL error = %v", r.err)
	}
	if r.stdout != "[\n  \"hello\",\n  \"world\"\n]\n" {
		t.Errorf("json output = %q", r.stdout)
	}

	r = runApp(t, "", "-s", addr, "-o", "yaml", "HMGET", "h", "hello", "nope")
	if r.err != nil {
		t.Fatalf("HMGET error = %v", r.err)
	}
	if r.stdout != "- world\n- null\n" {
		t.Errorf("yaml output = %q", r.stdout)
	}
}

func TestApp_OneShot_ErrorReply(t *testing.T) {
	addr := startServer(t)
	r := runApp(t, "", "-s", addr, "GET")
	if r.err != nil {
		t.Fatalf("error = %v", r.err)
	}
	if !strings.HasPrefix(r.stdout, "(error) ERR invalid arguments") {
		t.Errorf("output = %q", r.stdout)
	}
}

func TestApp_OneShot_Latency(t *testing.T) {
	addr := startServer(t)
	r := runApp(t, "", "-s", addr, "--latency", "ECHO", "x")
	if r.err != nil {
		t.Fatalf("error = %v", r.err)
	}
	if !strings.HasPrefix(r.stderr, "(") {
		t.Errorf("stderr = %q, want a latency line", r.stderr)
	}
}

func TestApp_OneShot_DialError(t *testing.T) {
	r := runApp(t, "", "-s", "127.0.0.1:1", "-t", "200ms", "GET", "a")
	if r.err == nil {
		t.Error("one-shot to an unused port should fail")
	}
}

func TestApp_BadOutputFlag(t *testing.T) {
	r := runApp(t, "", "-o", "xml", "GET", "a")
	if r.err == nil || !strings.Contains(r.err.Error(), "unknown output format") {
		t.Errorf("error = %v, want unknown output format", r.err)
	}
}

// ============================================================================
// Settings resolution
// ============================================================================

func TestApp_SavedConnection(t *testing.T) {
	addr := startServer(t)
	path := filepath.Join(t.TempDir(), "cli.yaml")
	content := "server: local\nconnections:\n  local: " + addr + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	r := runAppWithConfig(t, path, "", "ECHO", "via-config")
	if r.err != nil {
		t.Fatalf("error = %v", r.err)
	}
	if r.stdout != "\"via-config\"\n" {
		t.Errorf("output = %q", r.stdout)
	}
}

func TestApp_EnvServer(t *testing.T) {
	addr := startServer(t)
	t.Setenv("RESPKV_CLI_SERVER", addr)
	t.Setenv("RESPKV_CLI_OUTPUT", "json")

	r := runApp(t, "", "ECHO", "env")
	if r.err != nil {
		t.Fatalf("error = %v", r.err)
	}
	if r.stdout != "\"env\"\n" {
		t.Errorf("output = %q", r.stdout)
	}

	// Flags win over the environment.
	r = runApp(t, "", "-o", "text", "SET", "k", "v")
	if r.err != nil || r.stdout != "OK\n" {
		t.Errorf("output = %q, %v", r.stdout, r.err)
	}
}

// ============================================================================
// REPL mode
// ============================================================================

func TestApp_REPL(t *testing.T) {
	addr := startServer(t)
	r := runApp(t, "SET a 1\nGET a\nexit\n", "-s", addr)
	if r.err != nil {
		t.Fatalf("error = %v", r.err)
	}
	for _, want := range []string{addr + "> ", "OK\n", "\"1\"\n"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("output missing %q\n%s", want, r.stdout)
		}
	}
}

func TestApp_REPL_NotConnected(t *testing.T) {
	r := runApp(t, "GET a\n", "-s", "127.0.0.1:1", "-t", "200ms")
	if r.err != nil {
		t.Fatalf("error = %v", r.err)
	}
	if !strings.Contains(r.stderr, "Could not connect to 127.0.0.1:1") {
		t.Errorf("stderr = %q", r.stderr)
	}
	if !strings.Contains(r.stdout, "not connected> ") {
		t.Errorf("stdout = %q", r.stdout)
	}
}
