package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/stretchr/testify/require"
)

type msg string

func (m msg) Error() string { return string(m) }

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none.yml"))
	require.NoError(t, err)
	require.Equal(t, "modules", cfg.Root)
	require.True(t, cfg.IgnoreTests)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.yml")
	body := "root: .\nshared_modules: [migration]\nlayers:\n  application: [services]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ".", cfg.Root)
	require.Equal(t, []string{"migration"}, cfg.SharedModules)

	a := aliases(cfg.Layers)
	require.Equal(t, cleanarch.LayerApplication, a["services"])
	require.Equal(t, cleanarch.LayerDomain, a["domain"])
	require.Equal(t, cleanarch.LayerInfrastructure, a["infrastructure"])
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arch.yml")
	require.NoError(t, os.WriteFile(path, []byte("root: [unclosed"), 0o644))
	_, err := loadConfig(path)
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
}

func TestFilterViolations(t *testing.T) {
	cfg := &config{
		SharedModules:     []string{"shared"},
		AllowedViolations: []string{"legacy/rows.go"},
	}
	found := []msg{
		"cannot import between shared and migration modules",
		"domain imports infrastructure in legacy/rows.go",
		"domain/entity imports services/importer",
	}
	got := filterViolations(found, cfg)
	require.Equal(t, []msg{"domain/entity imports services/importer"}, got)
}
