// Package har models the subset of the HTTP Archive (HAR) format that the
// extraction pipeline reads: the log entry list with request URLs, headers,
// post bodies, and response bodies with their MIME labels.
//
// Fields the pipeline never looks at (timings, cookies, cache info) are
// intentionally absent; encoding/json skips them during decode.
package har

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoEntries is returned for a capture that parses but records no
// traffic. It is distinct from a parse failure so callers can report the
// two conditions separately.
var ErrNoEntries = errors.New("no entries found in capture")

// Document is one network session as saved by browser devtools.
type Document struct {
	Log Log `json:"log"`
}

// Log holds the ordered entry list.
type Log struct {
	Entries []Entry `json:"entries"`
}

// Entry is a single request/response exchange.
type Entry struct {
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

// Request carries the parts of an entry's request the scanner reads.
type Request struct {
	URL      string   `json:"url"`
	Headers  []Header `json:"headers"`
	PostData PostData `json:"postData"`
}

// PostData is the request body, when present.
type PostData struct {
	Text string `json:"text"`
}

// Response carries the parts of an entry's response the scanner reads.
type Response struct {
	Headers []Header `json:"headers"`
	Content Content  `json:"content"`
}

// Content is the response body with its declared MIME type.
type Content struct {
	Text     string `json:"text"`
	MimeType string `json:"mimeType"`
}

// Header is a single name/value pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Parse decodes a capture document. Both failure modes are fatal for the
// extraction run: a document that cannot be decoded returns a wrapped parse
// error, and a structurally valid document with an empty entry list returns
// ErrNoEntries. No partial document is ever returned.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid capture file: %w", err)
	}

	if len(doc.Log.Entries) == 0 {
		return nil, ErrNoEntries
	}

	return &doc, nil
}
