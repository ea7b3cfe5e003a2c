package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestMigrationFilesExist verifies that migration files are present
func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatalf("migrations directory does not exist: %s", migrationsDir)
	}

	expectedFiles := []string{
		"000001_create_quotes_table.up.sql",
		"000001_create_quotes_table.down.sql",
	}

	for _, filename := range expectedFiles {
		filePath := filepath.Join(migrationsDir, filename)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("migration file does not exist: %s", filePath)
		}
	}
}

// TestMigrationFilesParseable verifies that migration files contain the
// expected statements
func TestMigrationFilesParseable(t *testing.T) {
	migrationsDir := "../../migrations"

	up, err := os.ReadFile(filepath.Join(migrationsDir, "000001_create_quotes_table.up.sql"))
	if err != nil {
		t.Fatalf("failed to read up migration: %v", err)
	}
	if !strings.Contains(string(up), "CREATE TABLE IF NOT EXISTS quotes") {
		t.Error("up migration does not create the quotes table")
	}
	if !strings.Contains(string(up), "calculator_data") {
		t.Error("up migration is missing the calculator_data column")
	}

	down, err := os.ReadFile(filepath.Join(migrationsDir, "000001_create_quotes_table.down.sql"))
	if err != nil {
		t.Fatalf("failed to read down migration: %v", err)
	}
	if !strings.Contains(string(down), "DROP TABLE IF EXISTS quotes") {
		t.Error("down migration does not drop the quotes table")
	}
}
