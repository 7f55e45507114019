package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/ToonChess/internal/model"
)

// BackupVersion is written into every exported backup.
const BackupVersion = "1.0.0"

// Backup is the JSON document used to export and import launcher settings.
type Backup struct {
	Version   string         `json:"version"`
	CreatedAt string         `json:"created_at"`
	Settings  model.Snapshot `json:"settings"`
}

// ExportBackup writes the persisted part of snapshot to exportPath as JSON.
func ExportBackup(exportPath string, snapshot model.Snapshot) error {
	backup := Backup{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  snapshot.Persisted(),
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportBackup reads a backup file. Every setting is validated; the caller
// decides how to apply them.
func ImportBackup(importPath string) (Backup, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return Backup{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return Backup{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return Backup{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Settings == nil {
		backup.Settings = model.Snapshot{}
	}
	for key, value := range backup.Settings {
		if err := model.Validate(key, value); err != nil {
			return Backup{}, fmt.Errorf("invalid backup file: %w", err)
		}
	}
	return backup, nil
}
