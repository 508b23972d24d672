package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fikagroup/produccion-api/pkg/config"
)

// chdir is equivalent to testing.T.Chdir (Go 1.24+), which the local toolchain lacks.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, cfg.Ledger.Backend)
	assert.Equal(t, "Bs", cfg.Report.Currency)
	assert.Equal(t, 720, cfg.JWT.Expiration)
	assert.Empty(t, cfg.JWT.Secret)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGER_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_PORT", "no-numero")
	t.Setenv("CURRENCY", "USD")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendRedis, cfg.Ledger.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 8080, cfg.HTTP.Port, "un entero inválido usa el valor por defecto")
	assert.Equal(t, "USD", cfg.Report.Currency)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}

func TestLoad_UnknownBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGER_BACKEND", "sheets")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "fika", Password: "p@ss:word", DBName: "produccion", SSLMode: "disable"}
	assert.Equal(t, "postgres://fika:p%40ss%3Aword@db:5432/produccion?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
