package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/migrations"
	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	require.NoError(t, migrations.Apply(context.Background(), db))

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

// seedAccount inserts an account with a placeholder hash.
func seedAccount(t *testing.T, db *sqlx.DB, username string) *models.Account {
	t.Helper()

	account, err := NewAccountWriteRepository(db, nil).Create(context.Background(), &models.Account{
		Username:       username,
		Email:          username + "@example.com",
		PasswordHash:   "hash",
		ImageURL:       models.DefaultImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	})
	require.NoError(t, err)
	return account
}

// seedMessage inserts a message stamped at.
func seedMessage(t *testing.T, db *sqlx.DB, accountID int64, text string, at time.Time) *models.Message {
	t.Helper()

	message, err := NewMessageWriteRepository(db, nil).Create(context.Background(), accountID, text, at)
	require.NoError(t, err)
	return message
}

func countRows(t *testing.T, db *sqlx.DB, query string, args ...any) int {
	t.Helper()

	var n int
	assert.NoError(t, db.Get(&n, query, args...))
	return n
}
