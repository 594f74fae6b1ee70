package mockregistry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Call records a request made to the mock service.
type Call struct {
	Method string
	Path   string
	Query  string
}

// Server implements a minimal registry-like API surface backed by a Fixture.
type Server struct {
	mu      sync.Mutex
	fixture Fixture
	calls   []Call

	apiKey string
}

// New constructs a new mock server. Search keys are matched case-insensitively.
func New(f Fixture) *Server {
	f.OfficerSearch = lowerKeys(f.OfficerSearch)
	f.CompanySearch = lowerKeys(f.CompanySearch)
	return &Server{fixture: f}
}

func lowerKeys[T any](in map[string][]T) map[string][]T {
	out := make(map[string][]T, len(in))
	for k, v := range in {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// RequireAPIKey enforces basic auth with key as the username and an empty password.
// If key is empty, authorization is not enforced.
func (s *Server) RequireAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = strings.TrimSpace(key)
}

// FailPath makes every request to path fail with status.
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fixture.Failures == nil {
		s.fixture.Failures = make(map[string]int)
	}
	s.fixture.Failures[path] = status
}

// Handler returns an http.Handler that serves the mock API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/officers", s.handleOfficerSearch)
	mux.HandleFunc("GET /search/companies", s.handleCompanySearch)
	mux.HandleFunc("GET /officers/{id}/appointments", s.handleAppointments)
	mux.HandleFunc("GET /company/{number}", s.handleProfile)
	mux.HandleFunc("GET /company/{number}/officers", s.handleCompanyOfficers)
	return s.middleware(mux)
}

// Calls returns a snapshot of calls made to the server.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the calls whose path equals path.
func (s *Server) CallsTo(path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery})
		expected := s.apiKey
		status, failing := s.fixture.Failures[r.URL.Path]
		s.mu.Unlock()

		if expected != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != expected || pass != "" {
				writeError(w, http.StatusUnauthorized, "invalid-authorization")
				return
			}
		}
		if failing {
			writeError(w, status, "mock-failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleOfficerSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	s.mu.Lock()
	items := s.fixture.OfficerSearch[q]
	s.mu.Unlock()
	writeItems(w, items)
}

func (s *Server) handleCompanySearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	s.mu.Lock()
	items := s.fixture.CompanySearch[q]
	s.mu.Unlock()
	writeItems(w, items)
}

func (s *Server) handleAppointments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items, ok := s.fixture.Appointments[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "officer-not-found")
		return
	}
	writeItems(w, items)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.fixture.Profiles[r.PathValue("number")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "company-profile-not-found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCompanyOfficers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all, ok := s.fixture.CompanyOfficers[r.PathValue("number")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "company-officers-not-found")
		return
	}

	start, err := intParam(r, "start_index", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid-start-index")
		return
	}
	size, err := intParam(r, "items_per_page", 35)
	if err != nil || size <= 0 {
		writeError(w, http.StatusBadRequest, "invalid-items-per-page")
		return
	}

	page := []OfficerItem{}
	if start < len(all) {
		end := min(start+size, len(all))
		page = all[start:end]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":          page,
		"start_index":    start,
		"items_per_page": size,
		"total_results":  len(all),
	})
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func writeItems[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]any{
		"errors": []map[string]string{{"error": code, "type": "ch:service"}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
