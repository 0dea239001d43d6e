package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverPostgres,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "postgres",
			Password:       "wrongpassword",
			Name:           "inventory",
			SSLMode:        "disable",
			TimeoutSeconds: 2,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
		assert.NoError(t, Close(db))
	})
}

func TestOpen_DefersDialing(t *testing.T) {
	cfg := Config{
		Driver:         DriverPostgres,
		Host:           "localhost",
		Port:           9999, // Unused port
		User:           "postgres",
		Name:           "inventory",
		SSLMode:        "disable",
		TimeoutSeconds: 2,
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	assert.ErrorContains(t, Ping(db, cfg), "failed to ping database")
}
