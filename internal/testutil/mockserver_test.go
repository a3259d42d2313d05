package testutil

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
)

func get(t *testing.T, rawURL string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, rawURL, nil)
	AssertNil(t, err)
	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL is from httptest.Server (localhost)
	AssertNil(t, err)
	return resp
}

func TestMockServer(t *testing.T) {
	ms := NewMockServer(StaticHandler(http.StatusOK, `[]`))
	defer ms.Close()

	resp := get(t, ms.URL+"/buses?apikey=k")
	defer func() { _ = resp.Body.Close() }()

	AssertEqual(t, resp.StatusCode, http.StatusOK)

	body, err := io.ReadAll(resp.Body)
	AssertNil(t, err)
	AssertEqual(t, string(body), `[]`)

	AssertEqual(t, ms.RequestCount(), 1)
	last := ms.LastURL()
	AssertTrue(t, last != nil)
	AssertEqual(t, last.Path, "/buses")
	AssertEqual(t, last.Query().Get("apikey"), "k")
}

func TestMockServerConcurrentRequests(t *testing.T) {
	ms := NewMockServer(StaticHandler(http.StatusNoContent, ""))
	defer ms.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := get(t, ms.URL)
			_ = resp.Body.Close()
		}()
	}
	wg.Wait()

	AssertEqual(t, ms.RequestCount(), 8)
}

func TestMockServerReset(t *testing.T) {
	ms := NewMockServer(StaticHandler(http.StatusOK, ""))
	defer ms.Close()

	resp := get(t, ms.URL)
	_ = resp.Body.Close()
	AssertEqual(t, ms.RequestCount(), 1)

	ms.Reset()
	AssertEqual(t, ms.RequestCount(), 0)
	AssertTrue(t, ms.LastURL() == nil)
}
