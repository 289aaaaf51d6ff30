package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxPartNumberLength bounds user-supplied part numbers. Mouser and
// manufacturer part numbers are far shorter in practice.
const maxPartNumberLength = 128

// ValidatePartNumber validates a part number before it is sent to the API.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only values
//   - No control characters
//   - Maximum length of 128 characters
func ValidatePartNumber(pn string) error {
	if strings.TrimSpace(pn) == "" {
		return New(ErrCodeInvalidPart, "part number cannot be empty")
	}

	if len(pn) > maxPartNumberLength {
		return New(ErrCodeInvalidPart, "part number too long (max %d characters)", maxPartNumberLength)
	}

	for _, r := range pn {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPart, "part number contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a base URL string.
// It ensures the URL parses, has a host, and uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}

	return nil
}
