package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile loads a PDF file from disk. The error strings are shown to the
// user verbatim, so they are sentences rather than Go-style errors.
func ReadFile(path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("File not found: %s", path)
	}

	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return nil, errors.New("Invalid file type. Only PDF files are supported.")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read file: %v", err)
	}

	return data, nil
}

// DisplayName returns the file name to show in a tab title
func DisplayName(path string) string {
	name := filepath.Base(path)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "Unknown"
	}
	return name
}

// DirectoryOf returns the containing directory, or "" when the path has
// no parent
func DirectoryOf(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == path {
		return ""
	}
	return dir
}
