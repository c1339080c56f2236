// Package config loads runtime configuration for the inkwell CLI client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address and port of the inkwell server
//	-t int      per-request timeout, seconds
//	-c string   path to a JSON config file (alias: -config)
//
// JSON keys: "server_endpoint_addr", "request_timeout" ("5s" or integer nanoseconds).
package config
