// Package command turns decoded RESP frames into typed commands and runs
// them against a key-value store.
//
// Parsing and execution are separate steps:
//
//	cmd, err := command.Parse(frame)      // shape, arity and UTF-8 checks
//	if err != nil {
//		// reply -ERR <err>, keep the connection
//	}
//	reply := executor.Execute(cmd)         // never fails
//
// Supported commands: GET, SET, ECHO, HGET, HSET, HGETALL, HMGET, SADD,
// SISMEMBER. Names match ASCII case-insensitively.
package command
