package util

import (
	"errors"
	"strings"
)

// SanitizeFileName makes an uploaded name safe to embed in a storage key:
// traversal patterns are rejected outright, path separators become
// underscores. The result is never empty.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
