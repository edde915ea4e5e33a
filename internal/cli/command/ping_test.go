package command

import (
	"strings"
	"testing"
)

func TestPingCommand(t *testing.T) {
	cmd := PingCommand()
	if cmd.Name != "ping" {
		t.Errorf("Name = %q, want ping", cmd.Name)
	}
}

func TestPing(t *testing.T) {
	addr := startServer(t)

	r := runApp(t, "", "-s", addr, "ping")
	if r.err != nil {
		t.Fatalf("ping error = %v", r.err)
	}
	if r.stdout != "PONG\n" {
		t.Errorf("ping output = %q", r.stdout)
	}
}

func TestPing_CountAndMessage(t *testing.T) {
	addr := startServer(t)

	r := runApp(t, "", "-s", addr, "ping", "-n", "2", "--interval", "1ms", "hello")
	if r.err != nil {
		t.Fatalf("ping error = %v", r.err)
	}
	if r.stdout != "\"hello\"\n\"hello\"\n" {
		t.Errorf("ping output = %q", r.stdout)
	}
}

func TestPing_Errors(t *testing.T) {
	addr := startServer(t)

	if r := runApp(t, "", "-s", addr, "ping", "-n", "0"); r.err == nil || !strings.Contains(r.err.Error(), "count") {
		t.Errorf("ping -n 0 error = %v", r.err)
	}
	if r := runApp(t, "", "-s", "127.0.0.1:1", "-t", "200ms", "ping"); r.err == nil {
		t.Error("ping to an unused port should fail")
	}
}
