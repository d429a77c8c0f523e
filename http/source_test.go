package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/devdocs"
	devdocshttp "github.com/fwojciec/devdocs/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexJSON = `[
	{"name":"Go","slug":"go","type":"go","release":"1.22","mtime":1700000000},
	{"name":"Python","slug":"python~3.12","type":"sphinx","version":"3.12","release":"3.12.1"}
]`

const goEntriesJSON = `{"entries":[{"name":"fmt.Println","path":"fmt/index#Println","type":"fmt"}],"types":[{"name":"fmt","count":1,"slug":"fmt"}]}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/docs/docs.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(indexJSON))
	})
	mux.HandleFunc("/docs/go/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(goEntriesJSON))
	})
	mux.HandleFunc("/docs/broken/index.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	})
	mux.HandleFunc("/documents/go/fmt/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<h2 id="Println">func Println</h2>`))
	})
	mux.HandleFunc("/docs/slow/index.json", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"entries":[]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSource_FetchIndex(t *testing.T) {
	t.Parallel()

	t.Run("decodes docs from server", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		docs, err := source.FetchIndex(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "go", docs[0].Slug)
		assert.Equal(t, "Python", docs[1].Name)
		assert.Equal(t, "3.12", docs[1].Version)
	})

	t.Run("returns EUNAVAILABLE for non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		_, err := source.FetchIndex(context.Background())
		require.Error(t, err)
		assert.Equal(t, devdocs.EUNAVAILABLE, devdocs.ErrorCode(err))
		assert.Contains(t, devdocs.ErrorMessage(err), "fetch index")
		assert.Contains(t, devdocs.ErrorMessage(err), "HTTP 502")
	})

	t.Run("returns EUNAVAILABLE for malformed body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		}))
		defer server.Close()

		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		_, err := source.FetchIndex(context.Background())
		require.Error(t, err)
		assert.Equal(t, devdocs.EUNAVAILABLE, devdocs.ErrorCode(err))
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL("http://non-existent-host.invalid"),
			devdocshttp.WithTimeout(100*time.Millisecond))

		_, err := source.FetchIndex(context.Background())
		require.Error(t, err)
		assert.Equal(t, devdocs.EUNAVAILABLE, devdocs.ErrorCode(err))
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		ua := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua <- r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		docs, err := source.FetchIndex(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.Equal(t, devdocshttp.UserAgent, <-ua)
	})
}

func TestSource_FetchEntries(t *testing.T) {
	t.Parallel()

	t.Run("returns raw payload for slug", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		data, err := source.FetchEntries(context.Background(), "go")
		require.NoError(t, err)
		assert.Equal(t, goEntriesJSON, string(data))
	})

	t.Run("names the slug when the doc is missing", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		_, err := source.FetchEntries(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, devdocs.EUNAVAILABLE, devdocs.ErrorCode(err))
		assert.Contains(t, devdocs.ErrorMessage(err), "fetch entries for nope")
	})

	t.Run("rejects non-JSON payload", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		_, err := source.FetchEntries(context.Background(), "broken")
		require.Error(t, err)
		assert.Equal(t, devdocs.EUNAVAILABLE, devdocs.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL),
			devdocshttp.WithTimeout(10*time.Millisecond))

		_, err := source.FetchEntries(context.Background(), "slow")
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.FetchEntries(ctx, "go")
		require.Error(t, err)
	})
}

func TestSource_FetchPage(t *testing.T) {
	t.Parallel()

	t.Run("fetches the page without the fragment", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		html, err := source.FetchPage(context.Background(), "go", "fmt/index#Println")
		require.NoError(t, err)
		assert.Equal(t, `<h2 id="Println">func Println</h2>`, html)
	})

	t.Run("returns unavailable for missing page", func(t *testing.T) {
		t.Parallel()

		server := newServer(t)
		source := devdocshttp.NewSource(devdocs.ConfigForBaseURL(server.URL))

		_, err := source.FetchPage(context.Background(), "go", "nope#x")
		require.Error(t, err)
		assert.Equal(t, devdocs.EUNAVAILABLE, devdocs.ErrorCode(err))
		assert.Contains(t, devdocs.ErrorMessage(err), "fetch page nope#x for go")
	})
}
