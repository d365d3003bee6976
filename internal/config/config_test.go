package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "selfstudy.env")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		//** Act
		cfg, err := Load("")

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, EnvDevelopment, cfg.Env)
		assert.Equal(t, LogConfig{Level: "info", Format: "console"}, cfg.Log)
		assert.Equal(t, SolverConfig{Backend: "gophersat", TimeLimit: 5 * time.Minute, CbcPath: "cbc"}, cfg.Solver)
		assert.Equal(t, StoreNone, cfg.Store.Kind)
	})

	t.Run("File values", func(t *testing.T) {
		//** Arrange
		file := writeEnv(t, "SOLVER_BACKEND=cbc\nSOLVER_TIME_LIMIT=30s\nSTORE_KIND=sqlite\nSTORE_PATH=runs.db\n")

		//** Act
		cfg, err := Load(file)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, "cbc", cfg.Solver.Backend)
		assert.Equal(t, 30*time.Second, cfg.Solver.TimeLimit)
		assert.Equal(t, StoreConfig{Kind: StoreSqlite, Path: "runs.db"}, cfg.Store)
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		file := writeEnv(t, "LOG_LEVEL=debug\nLOG_FORMAT=json\n")
		t.Setenv("LOG_LEVEL", "WARN")

		cfg, err := Load(file)

		require.NoError(t, err)
		assert.Equal(t, LogConfig{Level: "warn", Format: "json"}, cfg.Log)
	})

	t.Run("Missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Invalid values", func(t *testing.T) {
		scenarios := map[string]string{
			"unknown level":      "LOG_LEVEL=verbose\n",
			"unknown store":      "STORE_KIND=redis\nSTORE_PATH=x\n",
			"store without path": "STORE_KIND=file\n",
			"bad duration":       "SOLVER_TIME_LIMIT=soon\n",
			"zero duration":      "SOLVER_TIME_LIMIT=0s\n",
			"unknown env":        "ENV=staging\n",
		}

		for name, content := range scenarios {
			_, err := Load(writeEnv(t, content))
			assert.Error(t, err, name)
		}
	})
}
