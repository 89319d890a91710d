// Package observability wires structured logging for the service.
package observability

import (
	"go.uber.org/zap"

	"github.com/fanpulse/backend/config"
)

// NewLogger builds the application logger. Production gets JSON output,
// everything else the human-readable development encoder.
func NewLogger() (*zap.Logger, error) {
	if config.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
