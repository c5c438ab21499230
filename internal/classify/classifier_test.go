package classify

import (
	"strings"
	"testing"
)

func TestClassifyKeepsFirstMatchingInclude(t *testing.T) {
	results := Classify(
		[]string{"https://a.com/report.pdf"},
		[]string{".doc", ".pdf", "report"},
		nil, nil,
	)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// ".pdf" wins over "report": includes are scanned in order.
	if results[0].Keyword != ".pdf" {
		t.Errorf("matched keyword = %q, expected .pdf", results[0].Keyword)
	}
}

func TestClassifyExcludeBeatsInclude(t *testing.T) {
	results := Classify(
		[]string{"https://a.com/tracker/report.pdf"},
		[]string{".pdf"},
		[]string{"tracker"},
		nil,
	)

	if len(results) != 0 {
		t.Errorf("expected exclude to win, got %v", results)
	}
}

func TestClassifyDedupByNormalizedValue(t *testing.T) {
	// Three spellings of the same URL plus one distinct query variant.
	candidates := []string{
		"https://a.com/f.pdf",
		`https:\/\/a.com\/f.pdf`,
		`"https://a.com/f.pdf"`,
		"https://a.com/f.pdf?v=2",
	}

	results := Classify(candidates, []string{".pdf"}, nil, nil)

	if len(results) != 2 {
		t.Fatalf("expected 2 results after dedup, got %v", results)
	}

	urls := make(map[string]int)
	for _, r := range results {
		urls[r.URL]++
	}
	if urls["https://a.com/f.pdf"] != 1 || urls["https://a.com/f.pdf?v=2"] != 1 {
		t.Errorf("unexpected result set: %v", results)
	}
}

func TestClassifyDiscardsUnnormalizable(t *testing.T) {
	candidates := []string{
		"not a url",
		"/relative/f.pdf",
		"",
		"https://a.com/real.pdf",
	}

	results := Classify(candidates, []string{".pdf"}, nil, nil)

	if len(results) != 1 || results[0].URL != "https://a.com/real.pdf" {
		t.Errorf("expected only the real URL, got %v", results)
	}
}

func TestClassifyCustomUnionedIntoInclude(t *testing.T) {
	include := []string{".pdf"}
	custom := []string{"/docs/"}

	// Matches neither include nor custom.
	if got := Classify([]string{"https://a.com/x.jpg"}, include, nil, custom); len(got) != 0 {
		t.Errorf("expected x.jpg discarded, got %v", got)
	}

	// Matches only the custom keyword.
	got := Classify([]string{"https://a.com/docs/file"}, include, nil, custom)
	if len(got) != 1 {
		t.Fatalf("expected /docs/file kept, got %v", got)
	}
	if got[0].Keyword != "/docs/" {
		t.Errorf("matched keyword = %q, expected /docs/", got[0].Keyword)
	}
}

func TestClassifyCaseInsensitiveMatching(t *testing.T) {
	results := Classify(
		[]string{"https://a.com/REPORT.PDF"},
		[]string{".pdf"},
		nil, nil,
	)

	if len(results) != 1 {
		t.Fatalf("expected case-insensitive include match, got %v", results)
	}
	// The URL itself keeps its original casing.
	if results[0].URL != "https://a.com/REPORT.PDF" {
		t.Errorf("URL = %q, casing must be preserved", results[0].URL)
	}
}

func TestClassifySortedByFinalSegment(t *testing.T) {
	candidates := []string{
		"https://z.com/docs/charlie.pdf",
		"https://a.com/other/Alpha.pdf",
		"https://m.com/bravo.pdf",
	}

	results := Classify(candidates, []string{".pdf"}, nil, nil)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %v", results)
	}

	var prev string
	for _, r := range results {
		segment := strings.ToLower(FinalSegment(r.URL))
		if segment < prev {
			t.Errorf("results not sorted: %q after %q", segment, prev)
		}
		prev = segment
	}

	if FinalSegment(results[0].URL) != "Alpha.pdf" {
		t.Errorf("expected Alpha.pdf first, got %v", results)
	}
}

func TestClassifyEmptyKeywordLists(t *testing.T) {
	// No include keywords means nothing is ever admitted.
	results := Classify([]string{"https://a.com/f.pdf"}, nil, nil, nil)
	if len(results) != 0 {
		t.Errorf("expected no results without includes, got %v", results)
	}
}

func TestFinalSegment(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"https://a.com/docs/f.pdf", "f.pdf"},
		{"https://a.com/get?file=x.pdf", "get?file=x.pdf"},
		{"https://a.com/", ""},
		{"no-slash-at-all", "no-slash-at-all"},
	}

	for _, tc := range testCases {
		if got := FinalSegment(tc.url); got != tc.expected {
			t.Errorf("FinalSegment(%q) = %q, expected %q", tc.url, got, tc.expected)
		}
	}
}

func TestFilename(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"https://a.com/docs/f.pdf", "f.pdf"},
		{"https://a.com/get?file=x.pdf", "get"},
		{"https://a.com/f.pdf?v=1&u=2", "f.pdf"},
		{"https://a.com/", ""},
	}

	for _, tc := range testCases {
		if got := Filename(tc.url); got != tc.expected {
			t.Errorf("Filename(%q) = %q, expected %q", tc.url, got, tc.expected)
		}
	}
}

func TestParseList(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{".pdf|/download/|getfile", []string{".pdf", "/download/", "getfile"}},
		{"  .pdf | .xlsx ", []string{".pdf", ".xlsx"}},
		{".pdf||", []string{".pdf"}},
		{"", nil},
		{"   ", nil},
		{"|||", nil},
	}

	for _, tc := range testCases {
		got := ParseList(tc.input)
		if len(got) != len(tc.expected) {
			t.Fatalf("ParseList(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("ParseList(%q)[%d] = %q, expected %q", tc.input, i, got[i], tc.expected[i])
			}
		}
	}
}
