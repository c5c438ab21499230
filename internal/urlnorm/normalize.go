// Package urlnorm repairs raw candidate strings pulled out of network
// captures into syntactically plausible absolute URLs.
//
// Strings found in capture bodies accumulate several kinds of damage in
// transit: JSON escaping (https:\/\/host), double escaping (https:\\/\\/),
// percent encoding (https%3A%2F%2F), surrounding quotes, and trailing
// punctuation from the structure they were embedded in. Normalize undoes
// these best-effort. The cleanup steps are order-sensitive and were tuned
// against real captures; keep the ordering intact, downstream keyword
// matching depends on the exact normalized form.
package urlnorm

import (
	"net/url"
	"regexp"
	"strings"
)

// maxEscapePasses bounds the escape-token removal loop. Nested escaping
// deeper than this does not occur in practice.
const maxEscapePasses = 5

// trailingGarbage is the set of characters stripped from the end of a
// candidate: structural residue from JSON/JS/HTML contexts.
const trailingGarbage = "\\\",;')} \t\n\r"

var (
	// backslashRun collapses any run of backslashes before a slash that the
	// pass-based token removal may have missed.
	backslashRun = regexp.MustCompile(`\\+/`)

	// slashRun matches runs of two or more slashes, capturing a leading
	// colon so the protocol separator can be preserved. Go's regexp has no
	// lookbehind, so the colon is matched explicitly and restored in the
	// replacement instead.
	slashRun = regexp.MustCompile(`(:)?/{2,}`)
)

// Normalize repairs raw into an absolute http(s) URL, or returns "" when
// the string is not URL-shaped. It is a pure function: no I/O, no state.
//
// The result, when non-empty, starts with http:// or https://, contains no
// backslashes, and has its fragment removed. Full RFC 3986 validity is not
// guaranteed; this is a heuristic cleaner, not a parser.
func Normalize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"'`)
	cleaned = strings.Trim(cleaned, `\`)

	// Remove escape tokens in passes; nested escaping resolves one layer
	// per pass. The tokens are literal two-character sequences, not control
	// characters.
	for pass := 0; pass < maxEscapePasses; pass++ {
		prev := cleaned
		cleaned = strings.ReplaceAll(cleaned, `\/`, "/")
		cleaned = strings.ReplaceAll(cleaned, `\\/`, "/")
		cleaned = strings.ReplaceAll(cleaned, `\"`, "")
		cleaned = strings.ReplaceAll(cleaned, `\n`, "")
		cleaned = strings.ReplaceAll(cleaned, `\r`, "")
		cleaned = strings.ReplaceAll(cleaned, `\t`, "")
		if cleaned == prev {
			break
		}
	}

	cleaned = backslashRun.ReplaceAllString(cleaned, "/")

	// Percent-decode only when the encoded scheme/slash markers are
	// present. Decode failure keeps the string as-is: decoding is a
	// best-effort enhancement, never fatal.
	if strings.Contains(cleaned, "%2F") || strings.Contains(cleaned, "%3A") {
		if decoded, err := url.PathUnescape(cleaned); err == nil {
			cleaned = decoded
		}
	}

	switch {
	case strings.HasPrefix(cleaned, "//"):
		cleaned = "https:" + cleaned
	case !strings.HasPrefix(cleaned, "http"):
		// Not URL-shaped. Most extracted strings end up here.
		return ""
	}

	cleaned = strings.ReplaceAll(cleaned, `\`, "/")

	// Collapse duplicate slashes but keep the :// separator. A run of two
	// or more slashes directly after a colon becomes exactly "://"; any
	// other run becomes a single slash.
	cleaned = slashRun.ReplaceAllStringFunc(cleaned, func(m string) string {
		if strings.HasPrefix(m, ":") {
			return "://"
		}
		return "/"
	})

	cleaned = strings.TrimRight(cleaned, trailingGarbage)

	if i := strings.IndexByte(cleaned, '#'); i >= 0 {
		cleaned = cleaned[:i]
	}

	return cleaned
}
