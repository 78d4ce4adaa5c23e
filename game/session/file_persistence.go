package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePersistence implements MatchPersistence using file system storage
type FilePersistence struct {
	matchesDir string
}

// NewFilePersistence creates a file-based match persistence layer, creating
// the directory if needed
func NewFilePersistence(matchesDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(matchesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create matches directory: %w", err)
	}
	return &FilePersistence{matchesDir: matchesDir}, nil
}

// Save persists a match record to a JSON file
func (fp *FilePersistence) Save(record *MatchRecord) error {
	if record == nil {
		return fmt.Errorf("match record cannot be nil")
	}

	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match record: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(record.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write match file: %w", err)
	}
	return nil
}

// Load retrieves a match record from a JSON file
func (fp *FilePersistence) Load(id string) (*MatchRecord, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrMatchNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read match file: %w", err)
	}

	var record MatchRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match record: %w", err)
	}
	return &record, nil
}

// Delete removes a match record file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrMatchNotFound
	}
	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove match file: %w", err)
	}
	return nil
}

// ListAll returns all persisted match IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.matchesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read matches directory: %w", err)
	}

	var matchIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			matchIDs = append(matchIDs, strings.TrimSuffix(name, ".json"))
		}
	}
	return matchIDs, nil
}

// Exists checks if a match record file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a match ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.matchesDir, fmt.Sprintf("%s.json", id))
}
