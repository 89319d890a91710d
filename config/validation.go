package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable for the
// current environment.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		if IsProduction() {
			return ValidationError{Field: "JWT_SECRET", Message: "required in production"}
		}
		// Development fallback; never valid for a deployed instance.
		cfg.JWTSecret = "fanpulse-dev-secret"
	}

	if cfg.DBHost != "" && cfg.DBUser == "" {
		return ValidationError{Field: "DB_USER", Message: "required when DB_HOST is set"}
	}

	if cfg.S3Bucket != "" && cfg.S3Key == "" {
		return ValidationError{Field: "S3_EXPORT_KEY", Message: "required when S3_BUCKET_NAME is set"}
	}

	if cfg.DataFile == "" {
		return ValidationError{Field: "DATA_FILE", Message: "must not be empty"}
	}

	if cfg.FetchLimit <= 0 {
		return ValidationError{Field: "FETCH_LIMIT", Message: "must be positive"}
	}

	return nil
}
