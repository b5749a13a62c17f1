package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// orderIDRegex matches order identifiers: letters, digits, dash and underscore.
var orderIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateOrderID validates an order identifier before it is used as a store
// key or a file name.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Only ASCII letters, digits, '-' and '_', not starting with a separator
func ValidateOrderID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidOrderID, "order id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidOrderID, "order id too long (max 128 characters)")
	}

	if !orderIDRegex.MatchString(id) {
		return New(ErrCodeInvalidOrderID, "invalid order id: %q", id)
	}

	return nil
}

// ValidateFormat checks an output format name against the allowed set and
// returns it lower-cased.
func ValidateFormat(format string, allowed ...string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return "", New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	return "", New(ErrCodeInvalidFormat, "unsupported format %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

// ValidateURL validates a backend URL string.
// It ensures the URL uses one of the given schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
