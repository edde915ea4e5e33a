// Package main provides the entry point for respkv-server.
//
// respkv-server is an in-memory key-value server speaking the Redis
// serialization protocol (RESP2/RESP3). It serves GET, SET, ECHO, HGET,
// HSET, HGETALL, HMGET, SADD and SISMEMBER, plus PING and QUIT.
//
// Usage:
//
//	respkv-server [flags]
//	respkv-server -config /etc/respkv/respkv.yaml
//
// Every configuration key can be overridden through the environment, for
// example RESPKV_SERVER_REDIS_ADDR=127.0.0.1:6380 or RESPKV_LOG_LEVEL=debug.
// When a configuration file is given it is watched and log.level is applied
// on change without a restart.
package main
