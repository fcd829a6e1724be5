package logger

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxURLLength is the maximum length for URLs in logs
	MaxURLLength = 500
	// MaxErrorMessageLength is the maximum length for error messages in logs
	MaxErrorMessageLength = 1000
)

// SanitizeURL sanitizes a request URL for safe logging: strips control
// characters, validates UTF-8, redacts the search query value (free text
// typed by the user), and truncates.
func SanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, "")
	}

	if u, err := url.Parse(raw); err == nil {
		q := u.Query()
		if q.Has("search") {
			q.Set("search", "[redacted]")
			u.RawQuery = q.Encode()
		}
		raw = u.String()
	}

	var builder strings.Builder
	builder.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsPrint(r) {
			builder.WriteRune(r)
		}
	}
	raw = builder.String()

	if len(raw) > MaxURLLength {
		raw = raw[:MaxURLLength] + "..."
	}

	return raw
}

// SanitizeError sanitizes an error message for safe logging
func SanitizeError(msg string) string {
	if msg == "" {
		return ""
	}

	if !utf8.ValidString(msg) {
		msg = strings.ToValidUTF8(msg, "")
	}

	var builder strings.Builder
	builder.Grow(len(msg))
	for _, r := range msg {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' {
			builder.WriteRune(r)
		}
	}
	msg = builder.String()

	if len(msg) > MaxErrorMessageLength {
		msg = msg[:MaxErrorMessageLength] + "..."
	}

	return msg
}
