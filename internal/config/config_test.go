package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "atelier-test"
server:
  port: 4000
database:
  driver: "sqlite"
  path: "test.db"
rentals:
  revalidate_on_update: true
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "atelier-test" {
		t.Errorf("expected app name atelier-test, got %s", cfg.App.Name)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("expected port 4000, got %d", cfg.Server.Port)
	}
	if !cfg.Rentals.RevalidateOnUpdate {
		t.Errorf("expected revalidate_on_update to be true")
	}
	if cfg.Rentals.GuardedDelete {
		t.Errorf("expected guarded_delete to default to false")
	}
	if cfg.Reminders.Hour != 9 {
		t.Errorf("expected default reminder hour 9, got %d", cfg.Reminders.Hour)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("ATELIER_DB_PATH", "/tmp/expanded.db")

	yamlContent := `
database:
  driver: "sqlite"
  path: "${ATELIER_DB_PATH}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "/tmp/expanded.db" {
		t.Errorf("expected expanded db path, got %s", cfg.Database.Path)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid sqlite config",
			cfg:     Config{Database: DatabaseConfig{Driver: "sqlite", Path: "studio.db"}},
			wantErr: false,
		},
		{
			name:    "sqlite without path",
			cfg:     Config{Database: DatabaseConfig{Driver: "sqlite"}},
			wantErr: true,
		},
		{
			name: "valid postgres config",
			cfg: Config{Database: DatabaseConfig{
				Driver:   "postgres",
				Postgres: PostgresConfig{Host: "localhost", DBName: "atelier"},
			}},
			wantErr: false,
		},
		{
			name: "postgres without dbname",
			cfg: Config{Database: DatabaseConfig{
				Driver:   "postgres",
				Postgres: PostgresConfig{Host: "localhost"},
			}},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Database: DatabaseConfig{Driver: "oracle"}},
			wantErr: true,
		},
		{
			name: "reminder hour out of range",
			cfg: Config{
				Database:  DatabaseConfig{Driver: "sqlite", Path: "studio.db"},
				Reminders: RemindersConfig{Hour: 25},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db.internal", Port: 5432, User: "atelier", Password: "s3cret", DBName: "studio"}
	dsn := p.DSN()
	want := "host=db.internal port=5432 user=atelier password=s3cret dbname=studio sslmode=disable"
	if dsn != want {
		t.Errorf("DSN() = %q, want %q", dsn, want)
	}
}
