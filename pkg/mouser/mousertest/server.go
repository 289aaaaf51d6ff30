// Package mousertest provides an in-process stub of the Mouser Search API
// for tests.
//
// The stub serves the three search endpoints under /api/v2/, records every
// request it receives, and answers with canned bodies configured per
// endpoint:
//
//	srv := mousertest.NewServer(t, "TESTKEY")
//	srv.Respond(mouser.EndpointPartNumber, http.StatusOK, `{"Errors":[],"SearchResults":{...}}`)
//
//	client, _ := mouser.NewClient("TESTKEY", mouser.WithBaseURL(srv.BaseURL()))
//
// Requests whose apiKey query parameter does not match the key given to
// NewServer are answered with a vendor-style error envelope, as the real
// API does.
package mousertest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// InvalidKeyBody is returned for requests carrying the wrong API key.
const InvalidKeyBody = `{"Errors":[{"Id":0,"Code":"Invalid","Message":"Invalid unique identifier.","ResourceKey":"InvalidIdentifier","ResourceFormatString":null,"ResourceFormatString2":null,"PropertyName":"API Key"}],"SearchResults":null}`

// Request is a request received by the stub.
type Request struct {
	Method   string
	Endpoint string // path relative to the API root, e.g. "search/partnumber"
	APIKey   string
	Header   http.Header
	Body     []byte
}

// Response is a canned reply.
type Response struct {
	Status int
	Body   string
}

// Server is a running stub API.
type Server struct {
	*httptest.Server

	apiKey string

	mu        sync.Mutex
	requests  []Request
	responses map[string]Response
}

// NewServer starts a stub accepting apiKey. It is closed when the test ends.
func NewServer(t testing.TB, apiKey string) *Server {
	t.Helper()

	s := &Server{
		apiKey:    apiKey,
		responses: make(map[string]Response),
	}

	r := chi.NewRouter()
	r.Route("/api/v2", func(r chi.Router) {
		r.Use(s.record)
		r.Use(s.requireKey)
		r.Get("/search/manufacturerlist", s.reply)
		r.Post("/search/partnumber", s.reply)
		r.Post("/search/partnumberandmanufacturer", s.reply)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to pass to mouser.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.URL + "/api/v2/"
}

// Respond configures the reply for endpoint. Endpoints without a configured
// reply answer 200 with an empty body.
func (s *Server) Respond(endpoint string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[endpoint] = Response{Status: status, Body: body}
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, if any.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Endpoint: endpointOf(r),
			APIKey:   r.URL.Query().Get("apiKey"),
			Header:   r.Header.Clone(),
			Body:     body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != s.apiKey {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, InvalidKeyBody)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp, ok := s.responses[endpointOf(r)]
	s.mu.Unlock()

	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if resp.Status != 0 {
		w.WriteHeader(resp.Status)
	}
	_, _ = io.WriteString(w, resp.Body)
}

func endpointOf(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/api/v2/")
}
