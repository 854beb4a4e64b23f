package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// TimesheetStore manages the directory of uploaded timesheet workbooks.
type TimesheetStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewTimesheetStore creates a TimesheetStore rooted at baseDir.
func NewTimesheetStore(baseDir string, logger *zap.Logger) *TimesheetStore {
	return &TimesheetStore{baseDir: baseDir, logger: logger}
}

// Dir returns the store's base directory.
func (s *TimesheetStore) Dir() string {
	return s.baseDir
}

// SaveUpload writes an uploaded workbook into the store and returns its
// path. Only .xlsx files are accepted; the filename is sanitized against
// path traversal.
func (s *TimesheetStore) SaveUpload(filename string, content []byte) (string, error) {
	safeName := SanitizeFilename(filename)
	if safeName == "" {
		return "", fmt.Errorf("invalid upload filename: %q", filename)
	}
	if !strings.EqualFold(filepath.Ext(safeName), ".xlsx") {
		return "", fmt.Errorf("only .xlsx timesheets are accepted, got %q", filename)
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create timesheet directory: %w", err)
	}

	fullPath := filepath.Join(s.baseDir, safeName)
	if err := validateWithin(s.baseDir, fullPath); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write uploaded timesheet",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Info("Timesheet uploaded",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return fullPath, nil
}

// ListWorkbooks returns the paths of all .xlsx files in the store, sorted by
// name for deterministic batch order.
func (s *TimesheetStore) ListWorkbooks() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read timesheet directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			paths = append(paths, filepath.Join(s.baseDir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Filenames may carry letters, digits, hyphens, underscores, and dots.
var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// SanitizeFilename strips path separators, parent references, and special
// characters from a filename so it cannot escape its directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeFileChars.ReplaceAllString(name, "")
	return name
}

// validateWithin checks that fullPath resolves inside baseDir.
func validateWithin(baseDir, fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}
	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}
	return nil
}
