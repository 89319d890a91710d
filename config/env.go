package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsDevelopment returns true if the current environment is development
func IsDevelopment() bool {
	return GetEnvironment() == Development
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}
