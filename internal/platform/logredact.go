package platform

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// redactedFieldNames are logrus field keys that must never reach a log
// sink in cleartext, regardless of which component logs them. Matched
// case-insensitively so "PasswordHash" and "password_hash" both redact.
var redactedFieldNames = []string{
	"password",
	"passphrase",
	"credential",
	"hash",
	"secret",
	"salt",
}

// RedactingFormatter wraps an underlying logrus.Formatter and blanks
// out any field whose name looks credential-shaped before handing the
// entry to it. Every log call site in this repo is expected to pass
// structured fields (logrus.WithField) rather than interpolate
// credential bytes into the message string, so this formatter is the
// single backstop against a future call site getting that wrong.
type RedactingFormatter struct {
	Inner logrus.Formatter
}

// Format implements logrus.Formatter.
func (f *RedactingFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if len(entry.Data) > 0 {
		redacted := make(logrus.Fields, len(entry.Data))
		for k, v := range entry.Data {
			if isRedactedField(k) {
				redacted[k] = "[REDACTED]"
			} else {
				redacted[k] = v
			}
		}
		clone := *entry
		clone.Data = redacted
		entry = &clone
	}

	inner := f.Inner
	if inner == nil {
		inner = &logrus.TextFormatter{}
	}
	return inner.Format(entry)
}

func isRedactedField(name string) bool {
	lower := strings.ToLower(name)
	for _, r := range redactedFieldNames {
		if strings.Contains(lower, r) {
			return true
		}
	}
	return false
}
