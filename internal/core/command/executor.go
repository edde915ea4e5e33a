package command

import (
	"strings"

	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

// Store is the keyspace the executor runs against. memory.Store implements
// it.
type Store interface {
	Get(key string) (resp.Frame, bool)
	Set(key string, value resp.Frame)
	HGet(key, field string) (resp.Frame, bool)
	HSet(key, field string, value resp.Frame)
	HGetAll(key string) ([]memory.Field, bool)
	HMGet(key string, fields []string) []resp.Frame
	SAdd(key string, members ...resp.Frame) int
	SIsMember(key string, member resp.Frame) bool
}

var replyOK = resp.SimpleString("OK")

// Executor applies commands to a Store and builds the reply frames. It
// holds no per-connection state and is safe for concurrent use.
type Executor struct {
	store    Store
	protocol resp.Protocol
}

// NewExecutor creates an executor. protocol selects the HGETALL reply
// shape: RESP2 returns a flat array, RESP3 a map.
func NewExecutor(store Store, protocol resp.Protocol) *Executor {
	if protocol != resp.RESP3 {
		protocol = resp.RESP2
	}
	return &Executor{store: store, protocol: protocol}
}

// Protocol returns the reply dialect.
func (e *Executor) Protocol() resp.Protocol { return e.protocol }

// Execute runs cmd and returns its reply. Execution itself cannot fail;
// every error path is caught by Parse.
func (e *Executor) Execute(cmd Command) resp.Frame {
	switch c := cmd.(type) {
	case Get:
		return orNull(e.store.Get(c.Key))
	case Set:
		e.store.Set(c.Key, c.Value)
		return replyOK
	case Echo:
		return resp.BulkString(c.Message)
	case HGet:
		return orNull(e.store.HGet(c.Key, c.Field))
	case HSet:
		e.store.HSet(c.Key, c.Field, c.Value)
		return replyOK
	case HGetAll:
		return e.hgetall(c.Key)
	case HMGet:
		values := e.store.HMGet(c.Key, c.Fields)
		out := make(resp.Array, len(values))
		for i, v := range values {
			out[i] = orNull(v, v != nil)
		}
		return out
	case SAdd:
		e.store.SAdd(c.Key, c.Members...)
		return replyOK
	case SIsMember:
		if e.store.SIsMember(c.Key, c.Member) {
			return resp.Integer(1)
		}
		return resp.Integer(0)
	default:
		return ErrorReply(ErrInvalidCommand)
	}
}

func (e *Executor) hgetall(key string) resp.Frame {
	fields, found := e.store.HGetAll(key)
	if !found {
		return resp.Null{}
	}
	if e.protocol == resp.RESP3 {
		if m, ok := fieldsToMap(fields); ok {
			return m
		}
		// A field name that cannot be a simple string falls back to the
		// flat form.
	}
	out := make(resp.Array, 0, 2*len(fields))
	for _, f := range fields {
		out = append(out, resp.BulkString(f.Name), f.Value)
	}
	return out
}

func fieldsToMap(fields []memory.Field) (*resp.Map, bool) {
	m := resp.NewMap()
	for _, f := range fields {
		if err := m.Insert(f.Name, f.Value); err != nil {
			return nil, false
		}
	}
	return m, true
}

func orNull(f resp.Frame, found bool) resp.Frame {
	if !found || f == nil {
		return resp.Null{}
	}
	return f
}

// ErrorReply converts an error into the "ERR <message>" simple error sent
// to clients. CR and LF are replaced so the reply stays a single line.
func ErrorReply(err error) resp.SimpleError {
	msg := strings.ToValidUTF8(err.Error(), "?")
	msg = strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
	return resp.SimpleError("ERR " + msg)
}
