package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shpitdev/registry-officer-search/internal/redact"
)

// ErrDetailMissing is reported when a company profile fetch fails without a more specific cause.
var ErrDetailMissing = errors.New("company detail unavailable")

// registryErrorEnvelope is the error body shape returned by the registry API.
type registryErrorEnvelope struct {
	Errors []struct {
		Error string `json:"error"`
		Type  string `json:"type"`
	} `json:"errors"`
}

// HTTPError is a sanitized summary of a registry API response with an unexpected status.
//
// Raw response bodies are never kept; only a redacted, truncated snippet.
type HTTPError struct {
	Op         string
	StatusCode int
	Status     string

	// Reason is the first error code from the registry error envelope, when present.
	Reason string
	// Snippet is a redacted, truncated hint for responses without an envelope.
	Snippet string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "registry http error"
	}
	parts := []string{
		fmt.Sprintf("registry api error: op=%s status=%s", strings.TrimSpace(e.Op), strings.TrimSpace(e.Status)),
	}
	if strings.TrimSpace(e.Reason) != "" {
		parts = append(parts, "reason="+strings.TrimSpace(e.Reason))
	}
	if strings.TrimSpace(e.Snippet) != "" {
		parts = append(parts, "body="+strings.TrimSpace(e.Snippet))
	}
	return strings.Join(parts, " ")
}

// IsNotFound reports whether err is a registry 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

func newHTTPError(op string, resp *http.Response, body []byte) error {
	h := &HTTPError{Op: op}
	if resp != nil {
		h.StatusCode = resp.StatusCode
		h.Status = resp.Status
	}

	var env registryErrorEnvelope
	if len(body) > 0 && json.Unmarshal(body, &env) == nil && len(env.Errors) > 0 {
		h.Reason = strings.TrimSpace(env.Errors[0].Error)
		if h.Reason != "" {
			return h
		}
	}

	h.Snippet = redactAndTruncate(body)
	return h
}

func redactAndTruncate(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	const max = 256
	b := body
	if len(b) > max {
		b = b[:max]
	}
	s := redact.Secrets(string(b))
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(body) > max {
		return s + "..."
	}
	return s
}
