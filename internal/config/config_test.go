package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "retention.db",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "retention",
			Username: "user",
		},
		Retention: RetentionConfig{
			DefaultDueLimit:       10,
			MaxDueLimit:           100,
			ConflictRetryAttempts: 3,
			ConflictRetryDelayMs:  10,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func(tempDir string) *Config
		wantErrorContains []string
	}{
		{
			name: "no config file uses defaults",
			want: func(string) *Config { return defaultConfig() },
		},
		{
			name: "valid config file with custom values",
			configContent: `server:
  port: 9090
storage:
  driver: mysql
database:
  host: db.example.com
  port: 3307
  database: srs
  username: admin
retention:
  default_due_limit: 20
  max_due_limit: 50
  conflict_retry_attempts: 5
  conflict_retry_delay_ms: 0
`,
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 9090
				cfg.Storage.Driver = DriverMySQL
				cfg.Database = DatabaseConfig{
					Host:     "db.example.com",
					Port:     3307,
					Database: "srs",
					Username: "admin",
				}
				cfg.Retention = RetentionConfig{
					DefaultDueLimit:       20,
					MaxDueLimit:           50,
					ConflictRetryAttempts: 5,
				}
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `storage:
  driver: memory
`,
			useExplicitPath: true,
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Storage.Driver = DriverMemory
				return cfg
			},
		},
		{
			name: "environment variables override file",
			configContent: `storage:
  driver: memory
`,
			env: map[string]string{
				"RETENTION_STORAGE_DRIVER": "postgres",
				"DB_PASSWORD":              "secret",
			},
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Storage.Driver = DriverPostgres
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `storage:
  driver: memory
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown storage driver",
			configContent: `storage:
  driver: cassandra
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [memory sqlite mysql postgres]"},
		},
		{
			name: "sqlite path in missing directory",
			configContent: `storage:
  driver: sqlite
  sqlite_path: /nonexistent/dir/retention.db
`,
			wantErr:           true,
			wantErrorContains: []string{"storage.sqlite_path must be inside an existing directory"},
		},
		{
			name: "max due limit below default",
			configContent: `retention:
  default_due_limit: 20
  max_due_limit: 5
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "max_due_limit"},
		},
		{
			name: "zero retry attempts",
			configContent: `retention:
  conflict_retry_attempts: 0
`,
			wantErr:           true,
			wantErrorContains: []string{"conflict_retry_attempts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RETENTION_STORAGE_DRIVER", "")
			t.Setenv("DB_PASSWORD", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			tempDir := t.TempDir()
			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "retention.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(tempDir), got)
		})
	}
}

func TestNewValidator(t *testing.T) {
	validate, trans, err := NewValidator()
	require.NoError(t, err)

	type request struct {
		OwnerID string `json:"owner_id" validate:"required"`
		Quality int    `json:"quality" validate:"min=0,max=5"`
	}

	err = validate.Struct(request{Quality: 9})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	translated := validationErrors.Translate(trans)
	assert.Equal(t, "owner_id is a required field", translated["request.owner_id"])
	assert.Equal(t, "quality must be 5 or less", translated["request.quality"])
}
