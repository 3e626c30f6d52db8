// Package validation checks untrusted names, paths, and origins before the
// server or the config layer acts on them.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PageExtensions are the extensions a page file may carry.
var PageExtensions = []string{".yml", ".yaml"}

// maxPageNameLength bounds page names taken from request paths.
const maxPageNameLength = 200

// ValidatePath validates a file path to prevent path traversal.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal detected: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidatePageName validates a slash-separated page name taken from a URL.
// The name must stay inside the pages directory and must not reach hidden
// files.
func ValidatePageName(name string) error {
	if name == "" {
		return fmt.Errorf("empty page name")
	}

	cleanName := filepath.ToSlash(filepath.Clean(name))
	if strings.Contains(cleanName, "..") {
		return fmt.Errorf("path traversal attempt detected")
	}
	if filepath.IsAbs(cleanName) || strings.HasPrefix(cleanName, "/") {
		return fmt.Errorf("absolute path not allowed")
	}

	dangerousChars := []string{"<", ">", "\"", "'", "&", ";", "|", "$", "`", "(", ")", "{", "}", "[", "]", "\\"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanName, char) {
			return fmt.Errorf("dangerous character not allowed: %s", char)
		}
	}

	for _, segment := range strings.Split(cleanName, "/") {
		if strings.HasPrefix(segment, ".") {
			return fmt.Errorf("hidden path segments not allowed")
		}
	}

	if len(cleanName) > maxPageNameLength {
		return fmt.Errorf("page name too long (max %d characters)", maxPageNameLength)
	}

	return nil
}

// ValidateFileExtension validates file extensions against an allowlist
func ValidateFileExtension(filename string, allowedExtensions []string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("file must have an extension")
	}

	for _, allowed := range allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}

	return fmt.Errorf("file extension '%s' is not allowed", ext)
}
