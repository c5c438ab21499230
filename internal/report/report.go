// Package report renders a classified result set into the export formats:
// a plain URL list, a detailed text report, a CSV table, and a JSON
// document. All formatters are pure string assembly over their inputs.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/harsift/harsift/internal/classify"
)

const banner = "======================================================================"

// Meta describes one extraction run for the report header.
type Meta struct {
	Source    string
	Generated time.Time
	Include   []string
	Custom    []string
	ExcludeN  int
}

// Report is the JSON export shape.
type Report struct {
	Source          string            `json:"source"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Total           int               `json:"total"`
	IncludeKeywords []string          `json:"include_keywords"`
	CustomKeywords  []string          `json:"custom_keywords,omitempty"`
	ExcludePatterns int               `json:"exclude_patterns"`
	Results         []classify.Result `json:"results"`
}

// New assembles the JSON export document.
func New(meta Meta, results []classify.Result) Report {
	return Report{
		Source:          meta.Source,
		GeneratedAt:     meta.Generated,
		Total:           len(results),
		IncludeKeywords: meta.Include,
		CustomKeywords:  meta.Custom,
		ExcludePatterns: meta.ExcludeN,
		Results:         results,
	}
}

// PlainURLs renders the copy-paste ready URL list, one per line.
func PlainURLs(results []classify.Result) string {
	urls := make([]string, 0, len(results))
	for _, r := range results {
		urls = append(urls, r.URL)
	}

	return strings.Join(urls, "\n")
}

// Text renders the detailed human-readable report: a header with the run
// metadata, one block per link (index, filename, URL, matched keyword),
// then a plain repeat of the URL list.
func Text(meta Meta, results []classify.Result) string {
	var b strings.Builder

	b.WriteString(banner + "\n")
	b.WriteString("DOCUMENT LINKS EXTRACTED FROM CAPTURE\n")
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Source File    : %s\n", meta.Source)
	fmt.Fprintf(&b, "Extracted On   : %s\n", meta.Generated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Links    : %d\n", len(results))
	fmt.Fprintf(&b, "Include Filter : %s\n", strings.Join(meta.Include, ", "))
	if len(meta.Custom) > 0 {
		fmt.Fprintf(&b, "Custom Keywords: %s\n", strings.Join(meta.Custom, ", "))
	}
	fmt.Fprintf(&b, "Exclude Count  : %d patterns\n", meta.ExcludeN)
	b.WriteString(banner + "\n\n")

	b.WriteString("── DOCUMENT LINKS ──\n\n")

	for i, r := range results {
		fmt.Fprintf(&b, "%4d. %s\n", i+1, classify.Filename(r.URL))
		fmt.Fprintf(&b, "      %s\n", r.URL)
		fmt.Fprintf(&b, "      [matched: %s]\n\n", r.Keyword)
	}

	b.WriteString(banner + "\n\n")
	b.WriteString("── PLAIN URL LIST (copy-paste ready) ──\n\n")

	for _, r := range results {
		b.WriteString(r.URL + "\n")
	}

	b.WriteString("\n" + banner + "\n")
	b.WriteString("END")

	return b.String()
}

// CSV renders the spreadsheet export. The index column is bare, the
// remaining fields are always quoted, and commas inside the filename are
// replaced with underscores so the row stays four columns wide.
func CSV(results []classify.Result) string {
	lines := make([]string, 0, len(results)+1)
	lines = append(lines, "index,filename,url,matched_keyword")

	for i, r := range results {
		name := strings.ReplaceAll(classify.Filename(r.URL), ",", "_")
		lines = append(lines, fmt.Sprintf(`%d,"%s","%s","%s"`, i+1, name, r.URL, r.Keyword))
	}

	return strings.Join(lines, "\n")
}
