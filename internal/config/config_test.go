package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	require.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("FRONTEND_URL", "https://todos.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, "https://todos.example.com", cfg.FrontendURL)
	require.True(t, cfg.IsProduction())
}

func TestMySQLDSN(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "todos"}
	require.Equal(t, "app:pw@tcp(db:3306)/todos?charset=utf8mb4&parseTime=True&loc=Local", cfg.MySQLDSN())
}
