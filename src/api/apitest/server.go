// Package apitest serves a miniature PokéAPI for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// ListPageSize is the page size of the fake type listing; small enough to
// force pagination.
const ListPageSize = 5

// Server is a fake PokéAPI backed by fixtures
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	fixtures map[string]string
	failures map[string]int
}

// NewServer starts a server with the default fixtures and closes it when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		hits:     make(map[string]int),
		fixtures: make(map[string]string),
		failures: make(map[string]int),
	}
	for path, body := range fixtures {
		s.fixtures[path] = body
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to pass to api.Options
func (s *Server) BaseURL() string {
	return s.URL + "/api/v2"
}

// Set adds or replaces the fixture served at path (e.g. "/type/fire")
func (s *Server) Set(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[path] = body
}

// Fail makes path answer with the given status code
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Hits returns how often path was requested
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Total returns the number of requests served
func (s *Server) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.hits {
		n += h
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v2"), "/")

	s.mu.Lock()
	s.hits[path]++
	status, failing := s.failures[path]
	body, ok := s.fixtures[path]
	s.mu.Unlock()

	if failing {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if path == "/type" {
		body, ok = s.typeList(r), true
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, strings.ReplaceAll(body, "{{base}}", s.BaseURL()))
}

func (s *Server) typeList(r *http.Request) string {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	end := min(offset+ListPageSize, len(typeIndex))

	var results []string
	for _, t := range typeIndex[offset:end] {
		results = append(results, fmt.Sprintf(`{"name":%q,"url":"{{base}}/type/%d/"}`, t.name, t.id))
	}

	next := "null"
	if end < len(typeIndex) {
		next = fmt.Sprintf(`"{{base}}/type?offset=%d&limit=%d"`, end, ListPageSize)
	}
	return fmt.Sprintf(`{"count":%d,"next":%s,"previous":null,"results":[%s]}`,
		len(typeIndex), next, strings.Join(results, ","))
}
