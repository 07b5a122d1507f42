// Package config loads runtime configuration for the QuickJobs client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables QUICKJOBS_* (a .env file is loaded first).
//  3. Optional JSON or YAML file selected with -c or -config.
//  4. Command-line flags (see parseFlags), which override everything else.
//
// # File schema
//
// Durations accept strings like "400ms" or integer nanoseconds:
//
//	{
//	  "store_driver": "sqlite",
//	  "store_dsn": "data/quickjobs.db",
//	  "session_ttl": "168h",
//	  "deeplink_delay": "400ms"
//	}
//
// The same keys work in YAML.
package config
