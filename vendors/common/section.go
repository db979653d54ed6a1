package common

import (
	"regexp"
	"strings"
)

// fieldListRegex matches ", Label:" inside a comma-separated field list
var fieldListRegex = regexp.MustCompile(`,[ \t]+([A-Za-z][^,:\n]*:)`)

// Section returns the text after the first match of start up to the first
// later line matching stop. The remainder of the start line is always part of
// the section. A nil stop, or a stop that never matches, runs to the end of text.
func Section(text string, start, stop *regexp.Regexp) (string, bool) {
	loc := start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	body := text[loc[1]:]
	if stop == nil {
		return body, true
	}

	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return body, true
	}
	rest := body[nl+1:]
	if m := stop.FindStringIndex(rest); m != nil {
		return body[:nl+1+m[0]], true
	}
	return body, true
}

// UnfoldFields splits comma-separated "Label: value" lists so that every
// label starts its own line, e.g. "MTU: 9192, Speed: 100Gbps" becomes two lines.
func UnfoldFields(text string) string {
	return fieldListRegex.ReplaceAllString(text, "\n$1")
}
