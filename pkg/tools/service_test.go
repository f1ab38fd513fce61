package tools

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/rapidmcp/pkg/myrapid"
	"github.com/NERVsystems/rapidmcp/pkg/myrapid/jsonval"
	"github.com/NERVsystems/rapidmcp/pkg/testutil"
)

// fakeFetcher answers every Fetch with a canned payload and records the
// requested URLs.
type fakeFetcher struct {
	mu   sync.Mutex
	data any
	ok   bool
	urls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, rawURL)
	return f.data, f.ok
}

func (f *fakeFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// mustDecode decodes a JSON fixture the way the fetch helper does.
func mustDecode(t *testing.T, body string) any {
	t.Helper()
	v, err := jsonval.Decode([]byte(body))
	require.NoError(t, err)
	return v
}

// newTestService returns a Service whose fetcher answers with body, or
// reports a failed fetch when body is empty.
func newTestService(t *testing.T, body string) (*Service, *fakeFetcher) {
	t.Helper()
	f := &fakeFetcher{}
	if body != "" {
		f.data = mustDecode(t, body)
		f.ok = true
	}
	cfg := myrapid.DefaultConfig()
	cfg.BaseURL = "https://geo.example.test/endpoint/geoservice"
	return NewService(cfg, f, testutil.DiscardLogger()), f
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	var b strings.Builder
	for _, content := range result.Content {
		text, ok := content.(mcp.TextContent)
		require.True(t, ok, "unexpected content type %T", content)
		b.WriteString(text.Text)
	}
	return b.String()
}
