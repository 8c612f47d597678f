package repository

import (
	"time"

	"github.com/slen516-afk/fraudboard/internal/config"
)

// OpenConfig opens a SQLStore from application configuration. An explicit
// DBDSN wins over the discrete host fields.
func OpenConfig(cfg *config.Config, opts ...Option) (*SQLStore, error) {
	dsn := cfg.DBDSN
	if dsn == "" {
		var err error
		dsn, err = BuildDSN(DSNConfig{
			Driver:         cfg.DBDriver,
			Host:           cfg.DBHost,
			Port:           cfg.DBPort,
			User:           cfg.DBUser,
			Password:       cfg.DBPassword,
			Name:           cfg.DBName,
			ConnectTimeout: time.Duration(cfg.DBConnectTimeoutMS) * time.Millisecond,
			ReadTimeout:    time.Duration(cfg.DBReadTimeoutMS) * time.Millisecond,
			WriteTimeout:   time.Duration(cfg.DBWriteTimeoutMS) * time.Millisecond,
		})
		if err != nil {
			return nil, err
		}
	}
	base := []Option{
		WithTable(cfg.DBTable),
		WithMaxOpenConns(cfg.DBMaxOpenConns),
		WithBreakerThreshold(cfg.BreakerFailureThreshold),
		WithBreakerTimeout(cfg.BreakerOpenTimeout()),
	}
	return Open(cfg.DBDriver, dsn, append(base, opts...)...)
}
