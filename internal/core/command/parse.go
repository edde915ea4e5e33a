package command

import (
	"fmt"
	"unicode/utf8"

	"github.com/yndnr/respkv/pkg/resp"
)

type parseFunc func(args []resp.Frame) (Command, error)

var parsers = map[string]parseFunc{
	"GET":       parseGet,
	"SET":       parseSet,
	"ECHO":      parseEcho,
	"HGET":      parseHGet,
	"HSET":      parseHSet,
	"HGETALL":   parseHGetAll,
	"HMGET":     parseHMGet,
	"SADD":      parseSAdd,
	"SISMEMBER": parseSIsMember,
}

// Parse validates a request frame and returns the typed command. A request
// is an Array whose first element is the command name as a BulkString.
func Parse(f resp.Frame) (Command, error) {
	arr, ok := f.(resp.Array)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrInvalidCommand, resp.KindOf(f))
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrInvalidCommand)
	}
	name, ok := arr[0].(resp.BulkString)
	if !ok {
		return nil, fmt.Errorf("%w: command name must be a bulk string, got %s", ErrInvalidCommand, resp.KindOf(arr[0]))
	}

	upper := normalizeCommandName(name)
	parse, ok := parsers[upper]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command '%s'", ErrInvalidCommand, truncate(string(name), 64))
	}
	return parse(arr[1:])
}

// normalizeCommandName upper-cases ASCII letters only; command names are
// ASCII and anything else can never match.
func normalizeCommandName(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ============================================================================
// Argument helpers
// ============================================================================

func checkArity(name string, args []resp.Frame, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: wrong number of arguments for '%s' command: want %d, got %d",
			ErrInvalidArguments, name, want, len(args))
	}
	return nil
}

func checkMinArity(name string, args []resp.Frame, min int) error {
	if len(args) < min {
		return fmt.Errorf("%w: wrong number of arguments for '%s' command: want at least %d, got %d",
			ErrInvalidArguments, name, min, len(args))
	}
	return nil
}

func bulkArg(name, what string, f resp.Frame) (resp.BulkString, error) {
	b, ok := f.(resp.BulkString)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' %s must be a bulk string, got %s",
			ErrInvalidArguments, name, what, resp.KindOf(f))
	}
	return b, nil
}

// textArg returns a bulk string argument as UTF-8 text, for keys and field
// names.
func textArg(name, what string, f resp.Frame) (string, error) {
	b, err := bulkArg(name, what, f)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: '%s' %s", ErrUTF8, name, what)
	}
	return string(b), nil
}

// ============================================================================
// Per-command parsers
// ============================================================================

func parseGet(args []resp.Frame) (Command, error) {
	if err := checkArity("get", args, 1); err != nil {
		return nil, err
	}
	key, err := textArg("get", "key", args[0])
	if err != nil {
		return nil, err
	}
	return Get{Key: key}, nil
}

func parseSet(args []resp.Frame) (Command, error) {
	if err := checkArity("set", args, 2); err != nil {
		return nil, err
	}
	key, err := textArg("set", "key", args[0])
	if err != nil {
		return nil, err
	}
	return Set{Key: key, Value: args[1]}, nil
}

func parseEcho(args []resp.Frame) (Command, error) {
	if err := checkArity("echo", args, 1); err != nil {
		return nil, err
	}
	msg, err := bulkArg("echo", "message", args[0])
	if err != nil {
		return nil, err
	}
	return Echo{Message: msg}, nil
}

func parseHGet(args []resp.Frame) (Command, error) {
	if err := checkArity("hget", args, 2); err != nil {
		return nil, err
	}
	key, err := textArg("hget", "key", args[0])
	if err != nil {
		return nil, err
	}
	field, err := textArg("hget", "field", args[1])
	if err != nil {
		return nil, err
	}
	return HGet{Key: key, Field: field}, nil
}

func parseHSet(args []resp.Frame) (Command, error) {
	if err := checkArity("hset", args, 3); err != nil {
		return nil, err
	}
	key, err := textArg("hset", "key", args[0])
	if err != nil {
		return nil, err
	}
	field, err := textArg("hset", "field", args[1])
	if err != nil {
		return nil, err
	}
	return HSet{Key: key, Field: field, Value: args[2]}, nil
}

func parseHGetAll(args []resp.Frame) (Command, error) {
	if err := checkArity("hgetall", args, 1); err != nil {
		return nil, err
	}
	key, err := textArg("hgetall", "key", args[0])
	if err != nil {
		return nil, err
	}
	return HGetAll{Key: key}, nil
}

func parseHMGet(args []resp.Frame) (Command, error) {
	if err := checkMinArity("hmget", args, 2); err != nil {
		return nil, err
	}
	key, err := textArg("hmget", "key", args[0])
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		field, err := textArg("hmget", "field", a)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return HMGet{Key: key, Fields: fields}, nil
}

func parseSAdd(args []resp.Frame) (Command, error) {
	if err := checkMinArity("sadd", args, 2); err != nil {
		return nil, err
	}
	key, err := textArg("sadd", "key", args[0])
	if err != nil {
		return nil, err
	}
	members := make([]resp.Frame, 0, len(args)-1)
	for _, a := range args[1:] {
		m, err := bulkArg("sadd", "member", a)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return SAdd{Key: key, Members: members}, nil
}

func parseSIsMember(args []resp.Frame) (Command, error) {
	if err := checkArity("sismember", args, 2); err != nil {
		return nil, err
	}
	key, err := textArg("sismember", "key", args[0])
	if err != nil {
		return nil, err
	}
	return SIsMember{Key: key, Member: args[1]}, nil
}
