package containers

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "sandlot"
	dbUser     = "sandlot"
	dbPassword = "secret"
)

// DBContainer is a throwaway Postgres with the schema loaded, for tests.
type DBContainer struct {
	container *postgres.PostgresContainer
}

// NewDBContainer must be called from a package directory one level below the
// repository root so the schema path resolves.
func NewDBContainer() *DBContainer {
	ctx := context.Background()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(filepath.Join("..", "schema", "schema.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting postgres container")
	}

	return &DBContainer{
		container: container,
	}
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("error terminating postgres container")
	}
}

func (c *DBContainer) ConnectionString() string {
	// explicitly set sslmode=disable because the container is not configured to use TLS
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		log.Fatal().Err(err).Msg("error getting connection string")
	}
	return connStr
}
