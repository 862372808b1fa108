package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rbufr.toml")
	content := "tables_path = \"/srv/rbufr/tables\"\n\n[defaults]\nmaster_table_version = 41\nlocal_table_version = 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/srv/rbufr/tables", cfg.TablesPath)
	require.Equal(t, uint8(41), cfg.Defaults.MasterTableVersion)
	require.Equal(t, uint8(2), cfg.Defaults.LocalTableVersion)
	require.Equal(t, "/srv/rbufr/tables", cfg.ResolveTablesPath())
}

func TestResolveTablesPathFallsBackToEnv(t *testing.T) {
	t.Setenv("RBUFR_TABLES_PATH", "/env/tables")
	cfg := Config{}
	require.Equal(t, "/env/tables", cfg.ResolveTablesPath())
}

func TestResolveTablesPathDefault(t *testing.T) {
	t.Setenv("RBUFR_TABLES_PATH", "")
	cfg := Config{}
	require.Equal(t, "tables", cfg.ResolveTablesPath())
}
