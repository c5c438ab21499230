package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsift/harsift/internal/classify"
	"github.com/harsift/harsift/internal/extractor"
	"github.com/harsift/harsift/internal/har"
	"github.com/harsift/harsift/internal/history"
	"github.com/harsift/harsift/internal/report"
)

var (
	includeFlag string
	excludeFlag string
	customFlag  string
	formatFlag  string
	saveDir     string
	noHistory   bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract document links from capture files",
	Long: `Extract document links from HAR capture files and saved web pages.

Every request URL, header, request body, and response body in the capture
is scanned for URL candidates. Candidates are cleaned up (escaping repaired,
wrappers stripped) and then filtered by keywords: a link must contain an
include or custom keyword and no exclude keyword to make the cut.

Keywords are pipe-delimited. Defaults admit PDFs and drop common asset and
tracker URLs; override them per run or in the config file.

Examples:
  harsift extract capture.har
  harsift extract --include ".pdf|.xlsx" --exclude ".png|cdn" capture.har
  harsift extract --custom "/download/|getfile" --format csv capture.har
  harsift extract --format report --save-dir ./exports capture.har page.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&includeFlag, "include", "i", classify.DefaultInclude, "pipe-delimited include keywords")
	extractCmd.Flags().StringVarP(&excludeFlag, "exclude", "e", classify.DefaultExclude, "pipe-delimited exclude keywords")
	extractCmd.Flags().StringVarP(&customFlag, "custom", "c", classify.DefaultCustom, "pipe-delimited custom keywords (added to includes)")
	extractCmd.Flags().StringVarP(&formatFlag, "format", "f", "human", "output format (human, json, csv, urls, report)")
	extractCmd.Flags().StringVar(&saveDir, "save-dir", "", "also write urls/report/csv files into this directory")
	extractCmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording this run in the history database")
}

// extraction is the outcome of scanning and classifying one input file.
type extraction struct {
	Source   string
	RawCount int
	Results  []classify.Result
	Include  []string
	Exclude  []string
	Custom   []string
}

func runExtract(cmd *cobra.Command, args []string) error {
	include, exclude, custom := keywordLists(cmd, includeFlag, excludeFlag, customFlag)

	for _, filename := range args {
		if !quiet {
			fmt.Fprintf(os.Stderr, "Processing %s...\n", filename)
		}

		ex, err := extractFromFile(filename, include, exclude, custom)
		if err != nil {
			return fmt.Errorf("failed to process %s: %w", filename, err)
		}

		log.Info().
			Str("source", ex.Source).
			Int("raw", ex.RawCount).
			Int("kept", len(ex.Results)).
			Int("discarded", ex.RawCount-len(ex.Results)).
			Msg("extraction complete")

		if err := outputExtraction(ex); err != nil {
			return fmt.Errorf("failed to output results for %s: %w", filename, err)
		}

		if saveDir != "" {
			if err := saveExports(ex); err != nil {
				return fmt.Errorf("failed to save exports for %s: %w", filename, err)
			}
		}

		if err := recordRun(ex); err != nil {
			log.Warn().Err(err).Msg("could not record run in history")
		}
	}

	return nil
}

// rawCandidates scans a single input for URL candidates. Saved web
// pages (.html/.htm) go through the DOM scanner; everything else is
// parsed as a HAR capture.
func rawCandidates(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return extractor.ScanPage(data)
	default:
		doc, err := har.Parse(data)
		if err != nil {
			return nil, err
		}
		return extractor.Scan(doc), nil
	}
}

// extractFromFile scans a single input and classifies its candidates.
func extractFromFile(filename string, include, exclude, custom []string) (*extraction, error) {
	candidates, err := rawCandidates(filename)
	if err != nil {
		return nil, err
	}

	return &extraction{
		Source:   filepath.Base(filename),
		RawCount: len(candidates),
		Results:  classify.Classify(candidates, include, exclude, custom),
		Include:  include,
		Exclude:  exclude,
		Custom:   custom,
	}, nil
}

func (ex *extraction) meta() report.Meta {
	return report.Meta{
		Source:    ex.Source,
		Generated: time.Now(),
		Include:   ex.Include,
		Custom:    ex.Custom,
		ExcludeN:  len(ex.Exclude),
	}
}

func outputExtraction(ex *extraction) error {
	switch strings.ToLower(formatFlag) {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report.New(ex.meta(), ex.Results))
	case "csv":
		fmt.Println(report.CSV(ex.Results))
		return nil
	case "urls":
		if out := report.PlainURLs(ex.Results); out != "" {
			fmt.Println(out)
		}
		return nil
	case "report":
		fmt.Println(report.Text(ex.meta(), ex.Results))
		return nil
	case "human":
		outputHuman(ex)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", formatFlag)
	}
}

func outputHuman(ex *extraction) {
	fmt.Printf("📄 File: %s\n", ex.Source)
	fmt.Printf("🔗 Found %d candidates, kept %d document links\n", ex.RawCount, len(ex.Results))

	if len(ex.Results) == 0 {
		fmt.Println("\n⚠️  No links matched the current keywords")
		fmt.Println("   Try widening --include or clearing --exclude")
		return
	}

	fmt.Println()

	for i, r := range ex.Results {
		name := classify.Filename(r.URL)
		if name == "" {
			name = r.URL
		}

		fmt.Printf("%4d. %s\n", i+1, name)
		fmt.Printf("      %s\n", r.URL)

		if verbose {
			fmt.Printf("      [matched: %s]\n", r.Keyword)
		}
	}
}

// saveExports writes the urls, report, and csv renditions of one
// extraction into the save directory, stamped so repeat runs never
// overwrite each other.
func saveExports(ex *extraction) error {
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	meta := ex.meta()

	exports := []struct {
		name    string
		content string
	}{
		{fmt.Sprintf("urls_%s.txt", stamp), report.PlainURLs(ex.Results) + "\n"},
		{fmt.Sprintf("report_%s.txt", stamp), report.Text(meta, ex.Results) + "\n"},
		{fmt.Sprintf("links_%s.csv", stamp), report.CSV(ex.Results) + "\n"},
	}

	for _, e := range exports {
		path := filepath.Join(saveDir, e.name)
		if err := os.WriteFile(path, []byte(e.content), 0o644); err != nil {
			return err
		}

		if !quiet {
			fmt.Fprintf(os.Stderr, "Saved %s\n", path)
		}
	}

	return nil
}

// recordRun stores the run in the history database when one is
// configured. History is best effort and never fails the extraction.
func recordRun(ex *extraction) error {
	dir := viper.GetString("history.dir")
	if dir == "" || noHistory {
		return nil
	}

	store, err := history.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(context.Background(), history.Run{
		Source:    ex.Source,
		RawCount:  ex.RawCount,
		KeptCount: len(ex.Results),
		Include:   strings.Join(ex.Include, "|"),
		Exclude:   strings.Join(ex.Exclude, "|"),
		Custom:    strings.Join(ex.Custom, "|"),
	})

	return err
}
