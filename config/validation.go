package config

import (
	"errors"
	"fmt"
)

// Validate checks that every setting the server cannot run without is set.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.ServerPort == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if cfg.DBHost == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if cfg.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if cfg.DBUser == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.S3Bucket == "" && cfg.MediaDir == "" {
		errs = append(errs, errors.New("either S3_BUCKET or MEDIA_DIR must be set"))
	}
	if cfg.PageSize < 1 {
		errs = append(errs, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize))
	}
	if cfg.MaxPageSize < cfg.PageSize {
		errs = append(errs, fmt.Errorf("MAX_PAGE_SIZE (%d) must not be below PAGE_SIZE (%d)", cfg.MaxPageSize, cfg.PageSize))
	}

	return errors.Join(errs...)
}
