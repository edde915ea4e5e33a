// Package main provides the entry point for respkv-cli.
//
// respkv-cli sends commands to a respkv server (or any server speaking
// RESP) and prints the replies the way redis-cli does.
//
// Usage:
//
//	respkv-cli [global options] [COMMAND [ARG...]]
//	respkv-cli -s 10.0.0.1:6379 HGETALL user:1
//	respkv-cli -o json SISMEMBER tags go
//	respkv-cli ping -n 3
//	respkv-cli config set connections.prod 10.0.0.1:6379
//
// Without a command it starts an interactive session.
package main
