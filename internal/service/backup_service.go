package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"littlestars/internal/database"
	"littlestars/internal/models"
	"littlestars/internal/repository"
)

const backupVersion = "1.0"

// BackupData is the file format written by Export
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Entries    []models.KVEntry `json:"entries"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes every stored entry to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}
	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes every stored entry as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	entries, err := repository.NewKVRepository(s.db).ListAll()
	if err != nil {
		return fmt.Errorf("failed to export entries: %w", err)
	}

	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
		Entries:    entries,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d entries", len(entries))
	return nil
}

// Import restores entries from a backup file
func (s *BackupService) Import(inputPath string, clearFirst bool) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file, clearFirst)
}

// ImportFromReader restores entries in a single transaction. Existing keys
// are overwritten; with clearFirst everything else is removed too.
func (s *BackupService) ImportFromReader(reader io.Reader, clearFirst bool) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := repository.NewKVRepository(tx)
	if clearFirst {
		log.Println("Clearing existing data...")
		if err := repo.Clear(); err != nil {
			return err
		}
	}
	for _, e := range backup.Entries {
		if err := repo.Set(e.Namespace, e.Key, e.Value); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Database import completed successfully: %d entries", len(backup.Entries))
	return nil
}
