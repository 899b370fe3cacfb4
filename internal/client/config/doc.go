// Package config loads runtime configuration for the parley client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), PARLEY_* prefixed.
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-s string   base URL of the account service
//	-t string   API bearer token
//	-timeout int  request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://chat.example.org",
//	  "api_token": "…",
//	  "request_timeout": "15s"
//	}
package config
