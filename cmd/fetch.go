package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harsift/harsift/internal/fetcher"
)

var (
	fetchOut      string
	fetchParallel int
	fetchTimeout  int
	fetchInclude  string
	fetchExclude  string
	fetchCustom   string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <file>",
	Short: "Download the document links found in a capture",
	Long: `Fetch extracts document links from a capture file (or reads a plain URL
list, one per line) and downloads them all into the output directory.

Downloads run in parallel with browser-like request headers, and colliding
file names get numeric suffixes so nothing is overwritten.

Examples:
  harsift fetch capture.har --out ./downloads
  harsift fetch capture.har --out ./downloads --parallel 8 --timeout 120
  harsift fetch urls.txt --out ./downloads`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchOut, "out", "", "output directory for downloaded files (required)")
	_ = fetchCmd.MarkFlagRequired("out")

	fetchCmd.Flags().IntVar(&fetchParallel, "parallel", 4, "maximum number of concurrent downloads")
	fetchCmd.Flags().IntVarP(&fetchTimeout, "timeout", "t", 60, "timeout in seconds per download")

	fetchCmd.Flags().StringVarP(&fetchInclude, "include", "i", "", "pipe-delimited include keywords")
	fetchCmd.Flags().StringVarP(&fetchExclude, "exclude", "e", "", "pipe-delimited exclude keywords")
	fetchCmd.Flags().StringVarP(&fetchCustom, "custom", "c", "", "pipe-delimited custom keywords (added to includes)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	urls, err := fetchTargets(cmd, filename)
	if err != nil {
		return fmt.Errorf("failed to collect URLs from %s: %w", filename, err)
	}

	if len(urls) == 0 {
		fmt.Println("⚠️  No document links to download")
		return nil
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "⬇️  Downloading %d files with %d workers...\n", len(urls), fetchParallel)
	}

	f := fetcher.New(fetcher.Options{
		OutDir:  fetchOut,
		Workers: fetchParallel,
		Timeout: time.Duration(fetchTimeout) * time.Second,
	}, log)

	results, summary, err := f.FetchAll(context.Background(), urls)
	if err != nil {
		return err
	}

	displayFetchResults(results, summary)

	if summary.Failed > 0 {
		return fmt.Errorf("download completed with %d failures", summary.Failed)
	}

	return nil
}

// fetchTargets resolves the URL list for a fetch run: a .txt input is
// read as one URL per line, anything else goes through extraction.
func fetchTargets(cmd *cobra.Command, filename string) ([]string, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".txt" {
		return readURLList(filename)
	}

	include, exclude, custom := keywordLists(cmd, fetchInclude, fetchExclude, fetchCustom)

	ex, err := extractFromFile(filename, include, exclude, custom)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(ex.Results))
	for _, r := range ex.Results {
		urls = append(urls, r.URL)
	}

	return urls, nil
}

func readURLList(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}

	return urls, nil
}

func displayFetchResults(results []fetcher.Result, summary fetcher.Summary) {
	if !quiet {
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "   ❌ %s: %v\n", r.URL, r.Err)
				continue
			}
			fmt.Fprintf(os.Stderr, "   ✅ %s (%d bytes)\n", r.Path, r.Bytes)
		}
	}

	fmt.Printf("\n📋 Download Results:\n")
	fmt.Printf("   Files: %d/%d succeeded\n", summary.Succeeded, summary.Total)
	fmt.Printf("   Data: %d bytes\n", summary.Bytes)
	fmt.Printf("   Duration: %v\n", summary.Elapsed.Round(time.Millisecond))
}
