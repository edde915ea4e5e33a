package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	tests := []struct {
		name  string
		value string
	}{
		{"Version", info.Version},
		{"Commit", info.Commit},
		{"BuildTime", info.BuildTime},
		{"GoVersion", info.GoVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Errorf("%s field should not be empty", tt.name)
			}
		})
	}

	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestGet_LdflagsWin(t *testing.T) {
	prevCommit, prevVersion := Commit, Version
	defer func() { Commit, Version = prevCommit, prevVersion }()

	Commit = "abc1234"
	Version = "v9.9.9"
	info := Get()
	if info.Commit != "abc1234" || info.Version != "v9.9.9" {
		t.Errorf("Get() = %+v, want injected values", info)
	}
}

func TestString(t *testing.T) {
	s := String()
	info := Get()

	if !strings.HasPrefix(s, info.Version+" ("+info.Commit+")") {
		t.Errorf("String() = %q", s)
	}
	if !strings.HasSuffix(s, "with "+runtime.Version()) {
		t.Errorf("String() = %q, want go version suffix", s)
	}
}
