// Package config loads the TOML settings that tell the catalog loader
// and the CLI where to find archived tables, plus a [defaults] table of
// table versions that is parsed but not used by any caller here.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	envTablesPath    = "RBUFR_TABLES_PATH"
	defaultTablesDir = "tables"
)

// Config is the root TOML document, e.g.:
//
//	tables_path = "/srv/rbufr/tables"
//
//	[defaults]
//	master_table_version = 41
//	local_table_version = 0
type Config struct {
	TablesPath string          `toml:"tables_path"`
	Defaults   DefaultVersions `toml:"defaults"`
}

// DefaultVersions are table versions read from the [defaults] table of the
// config file. They are loaded and returned as part of Config; no command
// in this module reads them.
type DefaultVersions struct {
	MasterTableVersion uint8 `toml:"master_table_version"`
	LocalTableVersion  uint8 `toml:"local_table_version"`
}

// Load reads and parses a TOML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveTablesPath returns cfg's explicit tables_path if set, else the
// RBUFR_TABLES_PATH environment variable if set, else "tables" in the
// working directory. This mirrors the reference implementation's
// explicit-config, then-env-var, then-default precedence.
func (cfg Config) ResolveTablesPath() string {
	if cfg.TablesPath != "" {
		return cfg.TablesPath
	}
	if v := os.Getenv(envTablesPath); v != "" {
		return v
	}
	return defaultTablesDir
}
