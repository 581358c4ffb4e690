package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setServerURL sets the global serverURL variable and registers a cleanup to restore it.
func setServerURL(t *testing.T, url string) {
	t.Helper()
	oldServerURL := serverURL
	serverURL = url
	t.Cleanup(func() { serverURL = oldServerURL })
}

// setStorageDriver sets the global storageDriver flag and registers a cleanup to restore it.
func setStorageDriver(t *testing.T, driver StorageFlag) {
	t.Helper()
	oldStorageDriver := storageDriver
	storageDriver = driver
	t.Cleanup(func() { storageDriver = oldStorageDriver })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// execute runs cmd with args and returns what it printed.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
