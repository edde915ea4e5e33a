package repl

import (
	"slices"
	"testing"
)

func TestNewCompleter(t *testing.T) {
	c := NewCompleter()
	for _, want := range []string{"GET", "HGETALL", "SISMEMBER", "PING", "connect", "exit"} {
		if !slices.Contains(c.commands, want) {
			t.Errorf("commands missing %q", want)
		}
	}
	if !slices.IsSorted(c.commands) {
		t.Error("commands should be sorted")
	}
}

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"hg", []string{"HGET", "HGETALL"}},
		{"HM", []string{"HMGET"}},
		{"s", []string{"SADD", "SET", "SISMEMBER"}},
		{"con", []string{"connect"}},
		{"zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := c.Complete(tt.prefix)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_EmptyPrefix(t *testing.T) {
	c := NewCompleter()
	if got := c.Complete(""); len(got) != len(c.commands) {
		t.Errorf("Complete(\"\") returned %d, want all %d", len(got), len(c.commands))
	}
}
