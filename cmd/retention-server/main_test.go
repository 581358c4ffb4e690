package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "retention-server", cmd.Use)
	assert.Equal(t, "Retention scheduling HTTP server", cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("debug"))
}

func TestRun_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))

	old := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = old })

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loadConfig()")
}
