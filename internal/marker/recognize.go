package marker

import "regexp"

// markerPattern recognizes marker lines: optional indentation, one or more
// comment-introduction tokens (#, ;, //, /*), an optional decorative --, the
// literal word mark, the keyword, and a closing --. The keyword is any run of
// characters that are neither whitespace nor hyphens.
var markerPattern = regexp.MustCompile(`^\s*(?:#|;|//|/\*)+\s*(?:--\s*)?mark\s+([^\s-]+)\s+--`)

// Recognize reports whether text is a marker line and, if so, returns the
// extracted keyword. Keywords other than begin and end still match; deciding
// what to do with them is the parser's job.
func Recognize(text string) (keyword string, ok bool) {
	m := markerPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
