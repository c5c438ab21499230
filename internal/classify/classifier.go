// Package classify turns raw URL candidates into an ordered, de-duplicated
// result set using include/exclude keyword rules.
package classify

import (
	"sort"
	"strings"

	"github.com/harsift/harsift/internal/urlnorm"
)

// Result is one accepted URL and the include keyword that admitted it.
type Result struct {
	URL     string `json:"url"`
	Keyword string `json:"matched_keyword"`
}

// Classify normalizes every candidate, drops the ones that fail cleanup or
// were already accepted, and applies keyword rules: a URL containing any
// exclude keyword is rejected regardless of includes, otherwise the first
// matching keyword from include++custom is recorded as the match reason.
// Results are sorted by the lower-cased final path segment.
//
// Classify is a pure function of its inputs; candidates may arrive in any
// order and the caller's slices are never mutated.
func Classify(candidates []string, include, exclude, custom []string) []Result {
	allInclude := lowerNonEmpty(include, custom)
	allExclude := lowerNonEmpty(exclude)

	seen := make(map[string]struct{})

	var results []Result

candidates:
	for _, raw := range candidates {
		cleaned := urlnorm.Normalize(raw)
		if cleaned == "" {
			continue
		}

		if _, dup := seen[cleaned]; dup {
			continue
		}

		lower := strings.ToLower(cleaned)

		for _, kw := range allExclude {
			if strings.Contains(lower, kw) {
				continue candidates
			}
		}

		for _, kw := range allInclude {
			if strings.Contains(lower, kw) {
				seen[cleaned] = struct{}{}
				results = append(results, Result{URL: cleaned, Keyword: kw})
				continue candidates
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a := strings.ToLower(FinalSegment(results[i].URL))
		b := strings.ToLower(FinalSegment(results[j].URL))
		if a != b {
			return a < b
		}
		// Candidate order is set-derived and unstable; break segment ties
		// on the full URL so output is deterministic across runs.
		return results[i].URL < results[j].URL
	})

	return results
}

// FinalSegment returns the text after the last slash of a URL, query string
// included. A URL without a slash is its own final segment. This is the
// sort and display key.
func FinalSegment(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}

	return url
}

// Filename returns the final segment with any query string stripped, for
// use as an export or download file name.
func Filename(url string) string {
	name := FinalSegment(url)
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}

	return name
}
