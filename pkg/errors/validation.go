package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// keyRegex matches collection and column keys: lowercase, digits, '-' and '_'.
var keyRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateKey validates a collection or column key.
//
// Keys name data collections ("ics", "nalma") and chart columns ("eon",
// "age"). They appear in file names, cache keys and query strings, so the
// rules are conservative:
//   - No empty keys
//   - Maximum length of 64 characters
//   - Lowercase letters, digits, '-' and '_' only, starting with a letter
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}
	if len(key) > 64 {
		return New(ErrCodeInvalidInput, "key too long (max 64 characters)")
	}
	if !keyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid key: %q", key)
	}
	return nil
}

// ValidatePath validates a source file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateRelativePath validates a path that must stay inside a base
// directory, such as a source listed in a config file served over HTTP.
// It applies [ValidatePath] and additionally rejects absolute paths and
// traversal sequences.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}
