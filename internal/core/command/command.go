package command

import (
	"errors"

	"github.com/yndnr/respkv/pkg/resp"
)

// Parse errors. They are reported to the client as "-ERR <message>" and
// never close the connection.
var (
	ErrInvalidCommand   = errors.New("invalid command")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrUTF8             = errors.New("invalid utf-8")
)

// Command is a parsed request. The set of implementations is closed.
type Command interface {
	// Name returns the canonical upper-case command name.
	Name() string
	command()
}

// Get reads a string key.
type Get struct {
	Key string
}

// Set stores any frame under a string key.
type Set struct {
	Key   string
	Value resp.Frame
}

// Echo returns its message unchanged.
type Echo struct {
	Message []byte
}

// HGet reads one hash field.
type HGet struct {
	Key   string
	Field string
}

// HSet writes one hash field.
type HSet struct {
	Key   string
	Field string
	Value resp.Frame
}

// HGetAll reads a whole hash.
type HGetAll struct {
	Key string
}

// HMGet reads several hash fields.
type HMGet struct {
	Key    string
	Fields []string
}

// SAdd adds members to a set.
type SAdd struct {
	Key     string
	Members []resp.Frame
}

// SIsMember tests set membership.
type SIsMember struct {
	Key    string
	Member resp.Frame
}

func (Get) Name() string       { return "GET" }
func (Set) Name() string       { return "SET" }
func (Echo) Name() string      { return "ECHO" }
func (HGet) Name() string      { return "HGET" }
func (HSet) Name() string      { return "HSET" }
func (HGetAll) Name() string   { return "HGETALL" }
func (HMGet) Name() string     { return "HMGET" }
func (SAdd) Name() string      { return "SADD" }
func (SIsMember) Name() string { return "SISMEMBER" }

func (Get) command()       {}
func (Set) command()       {}
func (Echo) command()      {}
func (HGet) command()      {}
func (HSet) command()      {}
func (HGetAll) command()   {}
func (HMGet) command()     {}
func (SAdd) command()      {}
func (SIsMember) command() {}

// Names lists the supported commands in a stable order.
func Names() []string {
	return []string{"ECHO", "GET", "HGET", "HGETALL", "HMGET", "HSET", "SADD", "SET", "SISMEMBER"}
}
