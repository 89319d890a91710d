// Package testhelpers provides database fixtures for tests. Unit tests run
// against an in-memory SQLite warehouse; the containerized Postgres helper
// is for opt-in integration runs.
package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fanpulse/backend/internal/models"
)

// SetupTestDatabase creates an isolated in-memory warehouse with the
// feedback tables migrated.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := db.AutoMigrate(&models.FeedbackRow{}, &models.EmailTracking{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

// SetupPostgresDatabase starts a containerized Postgres warehouse. Skipped
// when docker is not installed.
func SetupPostgresDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "fanpulse_test",
			},
			WaitingFor: wait.ForListeningPort(nat.Port("5432/tcp")).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, nat.Port("5432/tcp"))
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=postgres password=postgres dbname=fanpulse_test sslmode=disable",
		host, port.Port(),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to container database: %v", err)
	}

	if err := db.AutoMigrate(&models.FeedbackRow{}, &models.EmailTracking{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}
