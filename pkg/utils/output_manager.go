package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// OutputManager handles export directory organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// NewExportID returns a fresh export identifier.
func (om *OutputManager) NewExportID() string {
	return uuid.New().String()
}

// CreateExportDir creates a UUID-based directory for an export's files
func (om *OutputManager) CreateExportDir(exportID string) (string, error) {
	if _, err := uuid.Parse(exportID); err != nil {
		return "", fmt.Errorf("invalid export id %q: %w", exportID, err)
	}
	exportDir := filepath.Join(om.BaseOutputDir, exportID)

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	return exportDir, nil
}

// GetOutputFilePath generates a full path for an output file
func (om *OutputManager) GetOutputFilePath(exportID, fileName string) (string, error) {
	exportDir, err := om.CreateExportDir(exportID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	cleanFileName := filepath.Base(fileName)

	return filepath.Join(exportDir, cleanFileName), nil
}

// GetDownloadURL generates a download URL for a file
func (om *OutputManager) GetDownloadURL(exportID, fileName string) string {
	cleanFileName := filepath.Base(fileName)
	return fmt.Sprintf("/api/v1/exports/%s/%s", exportID, cleanFileName)
}

// ResolveFile returns the on-disk path of an existing export file.
func (om *OutputManager) ResolveFile(exportID, fileName string) (string, error) {
	if _, err := uuid.Parse(exportID); err != nil {
		return "", fmt.Errorf("invalid export id %q: %w", exportID, err)
	}
	path := filepath.Join(om.BaseOutputDir, exportID, filepath.Base(fileName))
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// GetFileType determines the export format based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".xlsx":
		return "xlsx"
	case ".db", ".sqlite":
		return "sqlite"
	default:
		return "unknown"
	}
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}
