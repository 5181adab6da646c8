package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/apartments/internal/config"
	"github.com/stwalsh4118/apartments/internal/database"
	"github.com/stwalsh4118/apartments/internal/models"
)

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		assert.NoError(t, loadEnvFile(""))
	})

	t.Run("loads variables without overriding", func(t *testing.T) {
		const key = "APARTMENTS_TEST_ENV_FILE_KEY"
		t.Cleanup(func() { os.Unsetenv(key) })
		t.Setenv("ENV", "from-process")

		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\nENV=from-file\n"), 0o600))

		require.NoError(t, loadEnvFile(path))
		assert.Equal(t, "from-file", os.Getenv(key))
		assert.Equal(t, "from-process", os.Getenv("ENV"))
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.env")
		require.NoError(t, os.WriteFile(path, []byte("BROKEN='unterminated\n"), 0o600))

		assert.Error(t, loadEnvFile(path))
	})
}

func TestMigrateCommand_CreatesTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("DB_PATH", dbPath)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "--env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, cmd.Execute())

	db, err := database.NewSQLite(context.Background(), config.DatabaseConfig{
		Driver:  config.DriverSQLite,
		Path:    dbPath,
		PoolMax: 1,
	}, nil)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.Gorm.Migrator().HasTable(&models.Apartment{}))
}

func TestMigrateCommand_InvalidConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "--env-file", ""})
	assert.Error(t, cmd.Execute())
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")

	flag := cmd.PersistentFlags().Lookup("env-file")
	require.NotNil(t, flag)
	assert.Equal(t, defaultEnvFile, flag.DefValue)
}
