package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/docs/report.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake report"))
	})
	mux.HandleFunc("/other/report.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 other report"))
	})
	mux.HandleFunc("/missing.pdf", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchAll(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()

	f := New(Options{OutDir: dir, Workers: 2, Timeout: 5 * time.Second}, zerolog.Nop())

	urls := []string{
		srv.URL + "/docs/report.pdf",
		srv.URL + "/other/report.pdf",
		srv.URL + "/missing.pdf",
	}

	results, summary, err := f.FetchAll(context.Background(), urls)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	// Same file name from two paths: second gets a numeric suffix.
	assert.Equal(t, filepath.Join(dir, "report.pdf"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "report_2.pdf"), results[1].Path)

	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake report", string(data))

	assert.Error(t, results[2].Err)
	assert.Equal(t, http.StatusNotFound, results[2].StatusCode)
}

func TestFetchAllEmptyList(t *testing.T) {
	f := New(Options{OutDir: t.TempDir()}, zerolog.Nop())

	results, summary, err := f.FetchAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, summary.Total)
}

func TestAssignPaths(t *testing.T) {
	f := New(Options{OutDir: "out"}, zerolog.Nop())

	paths := f.assignPaths([]string{
		"https://a.com/f.pdf",
		"https://b.com/f.pdf",
		"https://c.com/f.pdf",
		"https://d.com/",
		"https://e.com/get?file=x",
	})

	assert.Equal(t, []string{
		filepath.Join("out", "f.pdf"),
		filepath.Join("out", "f_2.pdf"),
		filepath.Join("out", "f_3.pdf"),
		filepath.Join("out", "download"),
		filepath.Join("out", "get"),
	}, paths)
}

func TestNewDefaults(t *testing.T) {
	f := New(Options{OutDir: "out"}, zerolog.Nop())

	assert.Equal(t, defaultWorkers, f.opts.Workers)
	assert.Equal(t, defaultTimeout, f.opts.Timeout)
	assert.NotEmpty(t, f.opts.UserAgent)
}
