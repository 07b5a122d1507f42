package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpower013/quickjobs-site-1/internal/flagx"
	"github.com/cpower013/quickjobs-site-1/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a config file. Durations use
// timex.Duration so files can say "400ms". Empty fields keep the value
// from earlier sources.
type FileConfig struct {
	StoreDriver    string         `json:"store_driver" yaml:"store_driver"`
	StoreDSN       string         `json:"store_dsn" yaml:"store_dsn"`
	KeyPrefix      string         `json:"key_prefix" yaml:"key_prefix"`
	RedisAddr      string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword  string         `json:"redis_password" yaml:"redis_password"`
	RedisDB        *int           `json:"redis_db" yaml:"redis_db"`
	S3Bucket       string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey    string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	SecretKey      string         `json:"secret_key" yaml:"secret_key"`
	SessionTTL     timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	DeepLinkDelay  timex.Duration `json:"deeplink_delay" yaml:"deeplink_delay"`
	BaseURL        string         `json:"base_url" yaml:"base_url"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config in args. Files
// ending in .yaml or .yml are read as YAML, anything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.StoreDriver, fc.StoreDriver)
	set(&cfg.StoreDSN, fc.StoreDSN)
	set(&cfg.KeyPrefix, fc.KeyPrefix)
	set(&cfg.RedisAddr, fc.RedisAddr)
	set(&cfg.RedisPassword, fc.RedisPassword)
	set(&cfg.S3Bucket, fc.S3Bucket)
	set(&cfg.S3Region, fc.S3Region)
	set(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	set(&cfg.S3AccessKey, fc.S3AccessKey)
	set(&cfg.S3SecretKey, fc.S3SecretKey)
	set(&cfg.SecretKey, fc.SecretKey)
	set(&cfg.BaseURL, fc.BaseURL)
	set(&cfg.LogLevel, fc.LogLevel)

	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
	if fc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = fc.SessionTTL.Duration
	}
	if fc.DeepLinkDelay.Duration != 0 {
		cfg.DeepLinkDelay = fc.DeepLinkDelay.Duration
	}
}
