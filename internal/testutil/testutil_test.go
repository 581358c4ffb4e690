package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/retention/internal/config"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(tmpDir, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// The generated file passes config validation.
	cfg, err := config.Load(got)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(tmpDir, "data", "retention.db"), cfg.Storage.SQLitePath)
	assert.Equal(t, 0, cfg.Retention.ConflictRetryDelayMs)
}

func TestCreateSeedFile(t *testing.T) {
	tmpDir := t.TempDir()
	got := CreateSeedFile(t, tmpDir,
		SeedFixture{OwnerID: "user1", ContentRef: "capital", ItemID: "item1"},
		SeedFixture{OwnerID: "user1", ContentRef: "generated"},
	)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, `- owner_id: user1
  content_ref: capital
  item_id: item1
- owner_id: user1
  content_ref: generated
`, string(content))
}
