package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// MockServer wraps httptest.Server and records every request it serves.
// The recorded URLs are safe to read while requests are still in flight.
type MockServer struct {
	*httptest.Server

	mu   sync.Mutex
	urls []*url.URL
}

// NewMockServer creates a new mock HTTP server
func NewMockServer(handler http.HandlerFunc) *MockServer {
	ms := &MockServer{}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ms.mu.Lock()
		u := *r.URL
		ms.urls = append(ms.urls, &u)
		ms.mu.Unlock()
		handler(w, r)
	}))

	return ms
}

// StaticHandler answers every request with the given status and body
func StaticHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// LastURL returns the URL of the most recent request
func (ms *MockServer) LastURL() *url.URL {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.urls) == 0 {
		return nil
	}
	return ms.urls[len(ms.urls)-1]
}

// RequestCount returns the number of requests received
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.urls)
}

// Reset clears the request history
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.urls = nil
}
