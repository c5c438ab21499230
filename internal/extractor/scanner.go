// Package extractor pulls raw URL candidates out of capture documents and
// raw web pages. Candidates are unverified strings; cleaning and keyword
// filtering happen downstream in classify.
package extractor

import (
	"strings"

	"github.com/harsift/harsift/internal/har"
)

// redirectHeaders are the response headers whose values are taken as
// candidates verbatim.
var redirectHeaders = map[string]bool{
	"location":         true,
	"content-location": true,
	"link":             true,
}

// Scan walks every entry of a capture document and unions the candidates
// from all sources: the request URL, request header values, the post body,
// redirect-style response headers, and the response body branched by its
// declared MIME type. Duplicates across sources collapse; the order of the
// returned slice is unspecified.
func Scan(doc *har.Document) []string {
	seen := make(map[string]struct{})
	add := func(candidates ...string) {
		for _, c := range candidates {
			seen[c] = struct{}{}
		}
	}

	for _, entry := range doc.Log.Entries {
		if u := entry.Request.URL; u != "" {
			add(u)
		}

		for _, h := range entry.Request.Headers {
			if strings.Contains(strings.ToLower(h.Value), "http") {
				add(patternRawURL.Find(h.Value)...)
			}
		}

		if text := entry.Request.PostData.Text; text != "" {
			add(patternRawURL.Find(text)...)
			add(patternEscapedURL.Find(text)...)
		}

		for _, h := range entry.Response.Headers {
			if redirectHeaders[strings.ToLower(h.Name)] && strings.Contains(h.Value, "http") {
				add(h.Value)
			}
		}

		add(scanBody(entry.Response.Content)...)
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}

	return out
}

// scanBody picks the pattern set for a response body by its MIME label.
// JSON bodies get three parallel passes (unescaped, singly-escaped,
// multiply-escaped) because one payload can mix escaping styles.
func scanBody(content har.Content) []string {
	body := content.Text
	if body == "" {
		return nil
	}

	mime := strings.ToLower(content.MimeType)
	trimmed := strings.TrimSpace(body)

	var found []string

	switch {
	case strings.Contains(mime, "json") ||
		strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		found = append(found, patternJSONURL.Find(body)...)
		found = append(found, patternJSONEscapedURL.Find(body)...)
		found = append(found, patternJSONDoubleEscapedURL.Find(body)...)

	case strings.Contains(mime, "html"):
		for _, v := range patternHTMLAttrURL.Find(body) {
			if strings.HasPrefix(v, "http") {
				found = append(found, v)
			}
		}
		found = append(found, patternHTMLRawURL.Find(body)...)
		found = append(found, patternHTMLCellURL.Find(body)...)

	case strings.Contains(mime, "javascript") || strings.Contains(mime, "script"):
		found = append(found, patternRawURL.Find(body)...)
		found = append(found, patternEscapedURL.Find(body)...)

	default:
		found = append(found, patternPlainURL.Find(body)...)
	}

	return found
}
