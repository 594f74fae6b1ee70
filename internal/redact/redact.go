package redact

import (
	"io"
	"regexp"
	"strings"
)

var (
	// Matches "Basic <credentials>" and "Bearer <token>" authorization values.
	authHeaderRe = regexp.MustCompile(`(?i)\b(Basic|Bearer)\s+[^\s"']+`)

	// Common key=value formats that sometimes leak in error strings.
	apiKeyKVRe = regexp.MustCompile(`(?i)\b(api[_-]?key|registry[_-]?api[_-]?key)\b\s*[:=]\s*[^\s"',}]+`)

	// URL userinfo, e.g. https://key:@host/path.
	userInfoRe = regexp.MustCompile(`(://)[^/\s:@]+:[^/\s@]*@`)
)

// Secrets removes obvious secret-bearing substrings from error/log strings.
//
// It is safe to call on any message, including upstream response snippets.
func Secrets(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(scrub(s))
}

func scrub(s string) string {
	s = authHeaderRe.ReplaceAllString(s, "$1 <redacted>")
	s = apiKeyKVRe.ReplaceAllString(s, "<redacted_kv>")
	return userInfoRe.ReplaceAllString(s, "${1}<redacted>@")
}

// Value removes every literal occurrence of secret from s, then applies Secrets.
func Value(s, secret string) string {
	secret = strings.TrimSpace(secret)
	if secret != "" {
		s = strings.ReplaceAll(s, secret, "<redacted>")
	}
	return Secrets(s)
}

// Writer scrubs a literal secret and the Secrets patterns from every write before
// passing it on. Each Write is scrubbed on its own, so a secret split across two
// writes is not caught; zerolog emits one write per event.
type Writer struct {
	w      io.Writer
	secret string
}

// NewWriter wraps w. An empty secret applies only the pattern redaction.
func NewWriter(w io.Writer, secret string) *Writer {
	return &Writer{w: w, secret: strings.TrimSpace(secret)}
}

func (rw *Writer) Write(p []byte) (int, error) {
	s := string(p)
	if rw.secret != "" {
		s = strings.ReplaceAll(s, rw.secret, "<redacted>")
	}
	if _, err := io.WriteString(rw.w, scrub(s)); err != nil {
		return 0, err
	}
	return len(p), nil
}
