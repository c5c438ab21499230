package extractor

import "regexp"

// SourcePattern is one extraction heuristic with its own name, regex, and
// example inputs. Each capture source (request line, header value, body
// MIME branch) owns its patterns, so the contribution of every heuristic
// stays independently testable instead of living in one monolithic scan.
type SourcePattern struct {
	Name        string
	Regex       *regexp.Regexp
	Group       int // submatch index holding the URL; 0 means whole match
	Description string
	Examples    []string
}

// Find returns all URL strings the pattern matches in text.
func (p SourcePattern) Find(text string) []string {
	if p.Group == 0 {
		return p.Regex.FindAllString(text, -1)
	}

	matches := p.Regex.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > p.Group {
			out = append(out, m[p.Group])
		}
	}

	return out
}

// The character classes below deliberately differ per source. Header and
// script contexts exclude backslash from the URL body (an escaped URL there
// is matched by the escaped variant instead), JSON additionally stops at
// closing brackets, and plain HTML/text only stops at whitespace, quotes
// and angle brackets.
var (
	patternRawURL = SourcePattern{
		Name:        "raw url",
		Regex:       regexp.MustCompile(`https?://[^\s"'<>\\,;]+`),
		Description: "scheme-prefixed URL in header values, post bodies, and scripts",
		Examples:    []string{`see https://site.com/reports/annual.pdf now`},
	}

	patternEscapedURL = SourcePattern{
		Name:        "escaped url",
		Regex:       regexp.MustCompile(`https?:\\?/\\?/[^\s"'<>,;]+`),
		Description: "URL with one optional backslash after each scheme slash",
		Examples:    []string{`https:\/\/site.com\/reports\/annual.pdf`},
	}

	patternJSONURL = SourcePattern{
		Name:        "json url",
		Regex:       regexp.MustCompile(`https?://[^\s"'<>\\,;\]})]+`),
		Description: "unescaped URL inside a JSON body",
		Examples:    []string{`{"href": "https://site.com/f.pdf"}`},
	}

	patternJSONEscapedURL = SourcePattern{
		Name:        "json escaped url",
		Regex:       regexp.MustCompile(`https?:\\?/\\?/[^\s"'<>,;\]})]+`),
		Description: "singly-escaped URL inside a JSON body",
		Examples:    []string{`{"href": "https:\/\/site.com\/f.pdf"}`},
	}

	patternJSONDoubleEscapedURL = SourcePattern{
		Name:        "json double-escaped url",
		Regex:       regexp.MustCompile(`https?:\\{1,4}/\\{0,4}/[^\s"'<>,;\]})]+`),
		Description: "multiply-escaped URL inside a JSON body",
		Examples:    []string{`{"href": "https:\\/\\/site.com\\/f.pdf"}`},
	}

	patternHTMLAttrURL = SourcePattern{
		Name:        "html attribute url",
		Regex:       regexp.MustCompile(`(?i)(?:href|src|data-href|data-src|data-url|action)\s*=\s*["']([^"']+)["']`),
		Group:       1,
		Description: "link-bearing attribute values in an HTML body",
		Examples:    []string{`<a href="https://site.com/f.pdf">report</a>`},
	}

	patternHTMLRawURL = SourcePattern{
		Name:        "html raw url",
		Regex:       regexp.MustCompile(`https?://[^\s"'<>]+`),
		Description: "scheme-prefixed URL anywhere in an HTML body",
		Examples:    []string{`<p>get it at https://site.com/f.pdf today</p>`},
	}

	patternHTMLCellURL = SourcePattern{
		Name:        "html cell url",
		Regex:       regexp.MustCompile(`(?i)<(?:td|span|div|p|li)[^>]*>\s*(https?://[^\s<]+)\s*</(?:td|span|div|p|li)>`),
		Group:       1,
		Description: "URL rendered as the sole text of a table or list element",
		Examples:    []string{`<td class="link"> https://site.com/f.pdf </td>`},
	}

	patternPlainURL = SourcePattern{
		Name:        "plain url",
		Regex:       regexp.MustCompile(`https?://[^\s"'<>]+`),
		Description: "scheme-prefixed URL in plain text, XML, and unknown bodies",
		Examples:    []string{`download: https://site.com/f.pdf`},
	}
)

// Patterns returns every scanner pattern, for debug listing.
func Patterns() []SourcePattern {
	return []SourcePattern{
		patternRawURL,
		patternEscapedURL,
		patternJSONURL,
		patternJSONEscapedURL,
		patternJSONDoubleEscapedURL,
		patternHTMLAttrURL,
		patternHTMLRawURL,
		patternHTMLCellURL,
		patternPlainURL,
	}
}
