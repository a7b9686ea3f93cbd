//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"eventReport/internal/config"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultPostgresImage = "postgres:16-alpine"

	postgresPort     = "5432"
	postgresUser     = "reporter"
	postgresPassword = "reporter"
	postgresDB       = "events_test"
)

// PostgresContainer is a running Postgres for tests together with the
// connection settings that reach it.
type PostgresContainer struct {
	testcontainers.Container
	Database config.Database
}

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// NewPostgresContainer starts Postgres and waits until it accepts
// connections. The container is terminated when the test finishes.
func NewPostgresContainer(t *testing.T, ctx context.Context) *PostgresContainer {
	t.Helper()

	SkipIfNoDocker(t)

	req := testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{postgresPort + "/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
			"TZ":                "UTC",
		},
		WaitingFor: wait.ForAll(
			// The entrypoint restarts the server once after init.
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(postgresPort+"/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("create postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		t.Fatalf("get mapped port: %v", err)
	}

	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		t.Fatalf("parse mapped port %q: %v", port.Port(), err)
	}

	return &PostgresContainer{
		Container: container,
		Database: config.Database{
			Host:     host,
			Port:     portNum,
			User:     postgresUser,
			Password: postgresPassword,
			DBName:   postgresDB,
			SSLMode:  "disable",
		},
	}
}

func (c *PostgresContainer) String() string {
	return fmt.Sprintf("postgres %s:%d/%s", c.Database.Host, c.Database.Port, c.Database.DBName)
}
