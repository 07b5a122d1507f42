package config

import (
	"fmt"
	"strconv"
	"time"
)

const envPrefix = "QUICKJOBS_"

// parseEnv overlays cfg with QUICKJOBS_* variables. Unset variables leave
// the current value alone; malformed numbers or durations are errors.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"STORE":          &cfg.StoreDriver,
		"DSN":            &cfg.StoreDSN,
		"KEY_PREFIX":     &cfg.KeyPrefix,
		"REDIS_ADDR":     &cfg.RedisAddr,
		"REDIS_PASSWORD": &cfg.RedisPassword,
		"S3_BUCKET":      &cfg.S3Bucket,
		"S3_REGION":      &cfg.S3Region,
		"S3_ENDPOINT":    &cfg.S3BaseEndpoint,
		"S3_ACCESS_KEY":  &cfg.S3AccessKey,
		"S3_SECRET_KEY":  &cfg.S3SecretKey,
		"SECRET":         &cfg.SecretKey,
		"BASE_URL":       &cfg.BaseURL,
		"LOG_LEVEL":      &cfg.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", envPrefix, err)
		}
		cfg.RedisDB = db
	}

	durations := map[string]*time.Duration{
		"SESSION_TTL":    &cfg.SessionTTL,
		"DEEPLINK_DELAY": &cfg.DeepLinkDelay,
	}
	for name, dst := range durations {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
