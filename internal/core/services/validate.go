package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/chime/internal/core/domain"
)

// validateFilePath checks that path names an existing file and returns
// its absolute, cleaned form. Only existence is checked; the contents
// are not inspected.
func validateFilePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", domain.NewValidationError(domain.FieldFilePath, "", "select a sound file")
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", domain.NewValidationError(domain.FieldFilePath, path, "cannot resolve path")
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", domain.NewValidationError(domain.FieldFilePath, path, "sound file does not exist")
	}
	if info.IsDir() {
		return "", domain.NewValidationError(domain.FieldFilePath, path, "is a directory")
	}

	return abs, nil
}
