// Package testutil provides shared test helpers for creating config files and seed fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// SetupTestConfig creates a config file using a SQLite database inside tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "data"), 0755))

	configContent := fmt.Sprintf(`server:
  port: 8080
storage:
  driver: sqlite
  sqlite_path: %s
retention:
  default_due_limit: 10
  max_due_limit: 100
  conflict_retry_attempts: 3
  conflict_retry_delay_ms: 0
`,
		filepath.Join(tmpDir, "data", "retention.db"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SeedFixture is one entry of a seed file.
type SeedFixture struct {
	OwnerID    string `yaml:"owner_id"`
	ContentRef string `yaml:"content_ref"`
	ItemID     string `yaml:"item_id,omitempty"`
}

// CreateSeedFile writes seeds as a YAML list to tmpDir/seeds.yml and returns its path.
func CreateSeedFile(t *testing.T, tmpDir string, seeds ...SeedFixture) string {
	t.Helper()

	data, err := yaml.Marshal(seeds)
	require.NoError(t, err)

	path := filepath.Join(tmpDir, "seeds.yml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
