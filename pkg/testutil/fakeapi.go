package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// FakeAPI is an in-process stand-in for the MyRapid geoservice. Responses
// are registered per path; unregistered paths answer 404.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []*http.Request
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{handlers: make(map[string]http.HandlerFunc)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(r.Context()))
	h, ok := f.handlers[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

// Handle registers a raw handler for path.
func (f *FakeAPI) Handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = h
}

// Respond makes path answer with status and body as JSON.
func (f *FakeAPI) Respond(path string, status int, body string) {
	f.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Hang makes path block until the client gives up on the request.
func (f *FakeAPI) Hang(path string) {
	f.Handle(path, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
}

// Requests returns the requests received so far.
func (f *FakeAPI) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

// LastQuery returns the parsed query of the most recent request, or
// nil when nothing was received.
func (f *FakeAPI) LastQuery() url.Values {
	reqs := f.Requests()
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1].URL.Query()
}
