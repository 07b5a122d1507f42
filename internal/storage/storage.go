// Package storage defines the byte-level key/value backend contract and
// picks a concrete implementation from configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/config"
	"github.com/cpower013/quickjobs-site-1/internal/dbx"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
	"github.com/cpower013/quickjobs-site-1/internal/storage/memstore"
	"github.com/cpower013/quickjobs-site-1/internal/storage/redisstore"
	"github.com/cpower013/quickjobs-site-1/internal/storage/s3store"
	"github.com/cpower013/quickjobs-site-1/internal/storage/sqlstore"
)

// Backend is a durable string-keyed byte store.
// Get returns (nil, nil) when the key is absent; Delete of an absent key
// is not an error.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

var (
	openSQL = func(ctx context.Context, d dbx.Dialect, dsn string) (Backend, error) {
		return sqlstore.Open(ctx, d, dsn)
	}
	openRedis = func(ctx context.Context, cfg *config.Config) (Backend, error) {
		return redisstore.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.KeyPrefix)
	}
	openS3 = func(ctx context.Context, cfg *config.Config) (Backend, error) {
		return s3store.Open(ctx, s3store.Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Prefix:       cfg.KeyPrefix,
		})
	}
)

// Open returns the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (Backend, error) {
	var (
		b   Backend
		err error
	)

	switch cfg.StoreDriver {
	case DriverSQLite:
		b, err = openSQL(ctx, dbx.DialectSQLite, cfg.StoreDSN)
	case DriverPostgres:
		b, err = openSQL(ctx, dbx.DialectPostgres, cfg.StoreDSN)
	case DriverRedis:
		b, err = openRedis(ctx, cfg)
	case DriverS3:
		b, err = openS3(ctx, cfg)
	case DriverMemory:
		b = memstore.New()
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownDriver, cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	log.Debug(ctx, "storage backend ready", "driver", cfg.StoreDriver)
	return b, nil
}
