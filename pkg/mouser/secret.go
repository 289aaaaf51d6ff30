package mouser

import (
	"fmt"
	"net/url"
	"strings"
)

const redacted = "[REDACTED]"

// Secret holds a credential that must never be printed.
// The value is fixed at construction; the zero Secret is empty.
//
// The value sits behind a pointer: fmt does not call methods on unexported
// fields, so a struct holding a Secret prints an address, not the key.
type Secret struct {
	value *string
}

// NewSecret wraps s in a Secret.
func NewSecret(s string) Secret {
	return Secret{value: &s}
}

// Expose returns the raw credential. Only request construction should call it.
func (s Secret) Expose() string {
	if s.value == nil {
		return ""
	}
	return *s.value
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool { return s.Expose() == "" }

// String implements fmt.Stringer.
func (s Secret) String() string { return redacted }

// GoString implements fmt.GoStringer so %#v stays redacted.
func (s Secret) GoString() string { return redacted }

// Format implements fmt.Formatter; every verb prints the redaction marker.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(redacted))
}

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }

// Redact replaces every occurrence of the secret in text, raw or
// query-escaped, with the redaction marker. Only whole tokens are replaced:
// an occurrence directly preceded or followed by a letter, digit, '-' or
// '_' is part of some other word and is left alone.
func (s Secret) Redact(text string) string {
	v := s.Expose()
	if v == "" {
		return text
	}
	text = replaceToken(text, v)
	if escaped := url.QueryEscape(v); escaped != v {
		text = replaceToken(text, escaped)
	}
	return text
}

func replaceToken(text, token string) string {
	var b strings.Builder
	last := 0
	for from := 0; from <= len(text)-len(token); {
		i := strings.Index(text[from:], token)
		if i < 0 {
			break
		}
		i += from
		end := i + len(token)
		if (i > 0 && isTokenByte(text[i-1])) || (end < len(text) && isTokenByte(text[end])) {
			from = i + 1
			continue
		}
		b.WriteString(text[last:i])
		b.WriteString(redacted)
		last, from = end, end
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func isTokenByte(c byte) bool {
	return c == '-' || c == '_' ||
		('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
