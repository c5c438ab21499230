package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageAttrs are the attributes harvested from a standalone page; same set
// the HTML body branch of the capture scanner matches on.
var pageAttrs = []string{"href", "src", "data-href", "data-src", "data-url", "action"}

// ScanPage extracts raw URL candidates from a raw HTML page: link-bearing
// attribute values that already carry a scheme, unioned with a raw pattern
// sweep over the markup for URLs sitting in text or inline scripts.
// Relative links are skipped; the pipeline only deals in absolute URLs.
func ScanPage(page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	seen := make(map[string]struct{})

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range pageAttrs {
			if v, ok := sel.Attr(attr); ok && strings.HasPrefix(v, "http") {
				seen[v] = struct{}{}
			}
		}
	})

	for _, m := range patternHTMLRawURL.Find(string(page)) {
		seen[m] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}

	return out, nil
}
