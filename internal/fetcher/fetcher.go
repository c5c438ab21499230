// Package fetcher downloads a classified URL list to local files using a
// bounded worker pool. Target file names are derived from each URL's final
// path segment, with numeric suffixes on collisions so no download
// overwrites another.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harsift/harsift/internal/classify"
)

const (
	defaultWorkers = 4
	defaultTimeout = 60 * time.Second
	defaultAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	fallbackName = "download"
)

// Options configures a download run.
type Options struct {
	OutDir    string
	Workers   int
	Timeout   time.Duration
	UserAgent string
}

// Result is the outcome for a single URL.
type Result struct {
	URL        string
	Path       string
	Bytes      int64
	StatusCode int
	Err        error
}

// Summary aggregates a whole run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Bytes     int64
	Elapsed   time.Duration
}

// Fetcher downloads URL lists according to its Options.
type Fetcher struct {
	client *http.Client
	opts   Options
	log    zerolog.Logger
}

// New builds a Fetcher, filling in defaults for unset options.
func New(opts Options, log zerolog.Logger) *Fetcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultAgent
	}

	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
		log:    log,
	}
}

// FetchAll downloads every URL into the output directory and returns the
// per-URL results in input order plus a run summary. File names are
// assigned up front so concurrent workers never race on a target path.
// Individual failures are recorded, not fatal; the returned error covers
// setup problems only.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]Result, Summary, error) {
	start := time.Now()

	if err := os.MkdirAll(f.opts.OutDir, 0o755); err != nil {
		return nil, Summary{}, fmt.Errorf("creating output directory: %w", err)
	}

	paths := f.assignPaths(urls)
	results := make([]Result, len(urls))

	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < f.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = f.fetchOne(ctx, urls[i], paths[i])
			}
		}()
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := Summary{Total: len(urls), Elapsed: time.Since(start)}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Bytes += r.Bytes
	}

	return results, summary, nil
}

// assignPaths maps each URL to a collision-free path under OutDir. A
// second occurrence of report.pdf becomes report_2.pdf, and so on.
func (f *Fetcher) assignPaths(urls []string) []string {
	used := make(map[string]int)
	paths := make([]string, len(urls))

	for i, u := range urls {
		name := classify.Filename(u)
		if name == "" {
			name = fallbackName
		}

		used[name]++
		if n := used[name]; n > 1 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
		}

		paths[i] = filepath.Join(f.opts.OutDir, name)
	}

	return paths
}

func (f *Fetcher) fetchOne(ctx context.Context, url, path string) Result {
	res := Result{URL: url, Path: path}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.Err = fmt.Errorf("building request: %w", err)
		return res
	}

	// Some portals refuse requests that do not look like a browser.
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("fetching: %w", err)
		f.log.Warn().Str("url", url).Err(err).Msg("download failed")
		return res
	}
	defer resp.Body.Close()

	res.StatusCode = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest {
		res.Err = fmt.Errorf("server returned %s", resp.Status)
		f.log.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("download failed")
		return res
	}

	out, err := os.Create(path)
	if err != nil {
		res.Err = fmt.Errorf("creating %s: %w", path, err)
		return res
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		res.Err = fmt.Errorf("writing %s: %w", path, err)
		return res
	}

	res.Bytes = n
	f.log.Debug().Str("url", url).Str("path", path).Int64("bytes", n).Msg("downloaded")

	return res
}
