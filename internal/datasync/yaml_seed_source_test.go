package datasync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLSeedSource_ReadAll(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        []Seed
		wantErrPart string
	}{
		{
			name: "seeds with and without ids",
			content: `- owner_id: user1
  content_ref: Define photosynthesis
  item_id: item2
- owner_id: user2
  content_ref: Generated id
`,
			want: []Seed{
				{OwnerID: "user1", ContentRef: "Define photosynthesis", ItemID: "item2"},
				{OwnerID: "user2", ContentRef: "Generated id"},
			},
		},
		{
			name:    "empty file",
			content: "",
		},
		{
			name:        "missing owner",
			content:     "- content_ref: orphan\n",
			wantErrPart: "seed 1 has no owner_id",
		},
		{
			name:        "not a list",
			content:     "owner_id: user1\n",
			wantErrPart: "yaml.Unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seeds.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := NewYAMLSeedSource(path).ReadAll()
			if tt.wantErrPart != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrPart)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewYAMLSeedSource(filepath.Join(t.TempDir(), "absent.yml")).ReadAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "os.ReadFile")
	})

	t.Run("bundled sample seeds", func(t *testing.T) {
		got, err := NewYAMLSeedSource(filepath.Join("..", "..", "schemas", "seeds.yml")).ReadAll()
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, Seed{OwnerID: "user1", ContentRef: "What is the capital of France?", ItemID: "item1"}, got[0])
		assert.Equal(t, "item3", got[2].ItemID)
	})
}
