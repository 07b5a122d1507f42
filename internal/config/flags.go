package config

import (
	"flag"
	"io"

	"github.com/cpower013/quickjobs-site-1/internal/flagx"
)

var configFlags = []string{
	"s", "store", "d", "dsn", "prefix",
	"redis-addr", "redis-password", "redis-db",
	"s3-bucket", "s3-region", "s3-endpoint", "s3-access-key", "s3-secret-key",
	"secret", "session-ttl", "deeplink-delay", "base-url", "log-level",
}

// FlagNames lists every flag the config layer reads, the config file flag
// included, so other parsers can skip them.
func FlagNames() []string {
	return append([]string{"c", "config"}, configFlags...)
}

// parseFlags overlays cfg with command-line flags.
//
// Supported flags:
//
//	-s, -store string          storage backend: sqlite, postgres, redis, s3, memory
//	-d, -dsn string            SQLite path or PostgreSQL DSN
//	-prefix string             key prefix for redis and s3
//	-redis-addr string         host:port of the Redis server
//	-redis-password string     Redis password
//	-redis-db int              Redis database number
//	-s3-bucket string          S3 bucket
//	-s3-region string          S3 region
//	-s3-endpoint string        S3 base endpoint (e.g. "http://127.0.0.1:9000/")
//	-s3-access-key string      S3 access key
//	-s3-secret-key string      S3 secret key
//	-secret string             HMAC secret for session tokens
//	-session-ttl duration      session lifetime (e.g. "168h")
//	-deeplink-delay duration   delay before a deep-linked job opens
//	-base-url string           page address used for share links
//	-log-level string          debug, info, warn or error
//
// Only these flags are picked out of args, so subcommands and their own
// flags can share the command line.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("quickjobs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "storage backend")
	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "storage backend")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "storage DSN")
	fs.StringVar(&cfg.StoreDSN, "dsn", cfg.StoreDSN, "storage DSN")
	fs.StringVar(&cfg.KeyPrefix, "prefix", cfg.KeyPrefix, "key prefix")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "redis password")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "redis database")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.SecretKey, "secret", cfg.SecretKey, "session token secret")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session lifetime")
	fs.DurationVar(&cfg.DeepLinkDelay, "deeplink-delay", cfg.DeepLinkDelay, "deep link delay")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "share link base URL")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, configFlags))
}
