// Package config loads runtime configuration for the blog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables GOPHBLOG_*, with a .env file in the working
//     directory loaded first (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags).
//
// Supported flags
//
//	-a string   blog server URL
//	-s string   session store path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "store_path": "gophblog.db",
//	  "request_timeout": "10s",
//	  "max_image_bytes": 5242880,
//	  "log_level": "info",
//	  "log_format": "console"
//	}
package config
