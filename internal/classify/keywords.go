package classify

import "strings"

// Default keyword sets. Include admits PDF links; exclude drops the asset
// and tracker noise that dominates a typical capture. Both are overridable
// per run.
const (
	DefaultInclude = ".pdf"
	DefaultExclude = ".jpg|.jpeg|.png|.gif|.svg|.webp|.ico|.css|.js|.woff|.woff2|" +
		"google-analytics|facebook|twitter|linkedin|instagram"
	DefaultCustom = ""
)

// ParseList splits a pipe-delimited keyword string into its keywords,
// trimming whitespace and dropping empty segments. Keywords are kept in
// order and need not be distinct.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, "|") {
		if kw := strings.TrimSpace(part); kw != "" {
			out = append(out, kw)
		}
	}

	return out
}

// lowerNonEmpty lower-cases a keyword list, dropping entries that are empty
// after trimming. The input slices are never mutated.
func lowerNonEmpty(lists ...[]string) []string {
	var out []string
	for _, list := range lists {
		for _, kw := range list {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				out = append(out, kw)
			}
		}
	}

	return out
}
