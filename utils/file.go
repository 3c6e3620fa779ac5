package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeFilename replaces anything outside [a-zA-Z0-9._-] with underscores
// so uploaded names are safe to use on disk.
func SanitizeFilename(filename string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)
}

// TimestampedName builds "base_<unix>ext" from an original filename, sanitized.
func TimestampedName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(originalName, ext)
	return SanitizeFilename(fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext))
}

// CopyFileWithTimestamp copies a file into the upload directory under a
// timestamped sanitized name and returns the destination path.
func CopyFileWithTimestamp(sourcePath, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %v", err)
	}
	defer sourceFile.Close()

	destPath := filepath.Join(uploadDir, TimestampedName(filepath.Base(sourcePath)))
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %v", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return "", fmt.Errorf("failed to copy file: %v", err)
	}

	return destPath, nil
}
