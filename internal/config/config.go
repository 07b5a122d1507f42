package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the QuickJobs client.
//
// Fields:
//   - StoreDriver / StoreDSN: storage backend (sqlite, postgres, redis, s3,
//     memory) and its DSN (SQLite file path or PostgreSQL URL).
//   - KeyPrefix: namespace for keys in shared backends (redis, s3).
//   - Redis*: go-redis connection settings.
//   - S3*: S3-compatible object storage settings (MinIO by default).
//   - SecretKey / SessionTTL: HMAC secret and lifetime of session tokens.
//   - DeepLinkDelay: pause before a deep-linked listing opens.
//   - BaseURL: page address used when sharing a listing link.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StoreDriver    string
	StoreDSN       string
	KeyPrefix      string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	SecretKey      string
	SessionTTL     time.Duration
	DeepLinkDelay  time.Duration
	BaseURL        string
	LogLevel       string
}

// LoadDefaults populates c with development defaults.
// NOTE: SecretKey and the S3 credentials must be overridden outside a laptop.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.StoreDSN = "data/quickjobs.db"
	c.KeyPrefix = "quickjobs/"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.S3Bucket = "quickjobs"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.SecretKey = "quickjobs-dev-secret"
	c.SessionTTL = 7 * 24 * time.Hour
	c.DeepLinkDelay = 400 * time.Millisecond
	c.BaseURL = "http://localhost:8080/jobs.html"
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the environment (a .env file in
// the working directory is loaded first if present), then the config file
// named by -c/-config, then flags. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	// .env is optional
	_ = godotenv.Load()

	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
