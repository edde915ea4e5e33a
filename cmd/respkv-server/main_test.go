package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/pkg/resp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "respkv.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-version"}, &out); err != nil {
		t.Fatalf("run(-version) error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "respkv-server ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRun_BadFlag(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-nope"}, &out); err == nil {
		t.Error("run(-nope) should fail")
	}
}

func TestRun_StartFailureReleasesResources(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen error: %v", err)
	}
	defer busy.Close()

	free, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen error: %v", err)
	}
	metricsAddr := free.Addr().String()
	free.Close()

	path := writeConfig(t, "server:\n  redis:\n    addr: "+busy.Addr().String()+
		"\n  metrics:\n    enabled: true\n    addr: "+metricsAddr+"\n")

	var out bytes.Buffer
	err = run(context.Background(), []string{"-config", path}, &out)
	if err == nil || !strings.Contains(err.Error(), "start redis server") {
		t.Fatalf("run() error = %v, want start redis server failure", err)
	}

	// The metrics listener was shut down on the way out.
	ln, err := net.Listen("tcp", metricsAddr)
	if err != nil {
		t.Fatalf("metrics address still in use after failed start: %v", err)
	}
	ln.Close()
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, loader, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("cfg = %+v, want defaults", *cfg)
	}
	if loader.FilePath() != "" {
		t.Errorf("FilePath() = %q, want empty", loader.FilePath())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "server:\n  redis:\n    protocol: 5\n")
	if _, _, err := loadConfig(path); err == nil || !strings.Contains(err.Error(), "protocol") {
		t.Errorf("loadConfig() error = %v, want protocol error", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("loadConfig() should fail for a missing file")
	}
}

func TestRedisConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Redis.Protocol = 3
	cfg.Server.Redis.RateLimit = 50
	cfg.Server.Redis.Timeout.Read = time.Second
	cfg.Server.Redis.UnixSocket = "/run/respkv.sock"

	rc := redisConfig(cfg)
	if rc.UnixSocket != "/run/respkv.sock" || rc.UnixSocketPerm != 0o700 {
		t.Errorf("unix socket = %q %o", rc.UnixSocket, rc.UnixSocketPerm)
	}
	if rc.Protocol != resp.RESP3 {
		t.Errorf("Protocol = %d, want 3", rc.Protocol)
	}
	if rc.RateLimit != 50 || rc.ReadTimeout != time.Second {
		t.Errorf("redis config = %+v", rc)
	}
	if rc.IdleTimeout != config.DefaultIdleTimeout {
		t.Errorf("IdleTimeout = %v", rc.IdleTimeout)
	}
}

func TestApplyReload(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDefaults(config.DefaultValues()),
	)
	if err := loader.Load(config.Default()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	prev := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(prev) })
	logger.SetLevel("info")

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	applyReload(loader, logger.Discard(), path)
	if got := logger.GetLevel(); got != "debug" {
		t.Errorf("level after reload = %q, want debug", got)
	}

	// An invalid file keeps the current level.
	if err := os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	applyReload(loader, logger.Discard(), path)
	if got := logger.GetLevel(); got != "debug" {
		t.Errorf("level after invalid reload = %q, want debug", got)
	}
}
