package common

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// numberRegex matches a signed decimal number
var numberRegex = regexp.MustCompile(`-?\d*\.?\d+`)

// counterRegex matches the leading integer of a counter value
var counterRegex = regexp.MustCompile(`^\d+`)

// Placeholders printed by devices in place of a value
var placeholders = map[string]bool{
	"":    true,
	"-":   true,
	"--":  true,
	"N/A": true,
}

// unitRegexes caches compiled "number followed by unit" patterns
var unitRegexes sync.Map

// Field is a compiled "label : value" matcher.
// The label is a regular expression fragment anchored at the start of a line
// after optional leading whitespace.
type Field struct {
	label string
	re    *regexp.Regexp
}

// NewField compiles a field matcher for label. It panics on an invalid pattern,
// so fields are declared as package variables.
func NewField(label string) Field {
	return Field{
		label: label,
		re:    regexp.MustCompile(`(?m)^[ \t]*(?:` + label + `)[ \t]*:[ \t]*(.*)$`),
	}
}

// Label returns the label pattern
func (f Field) Label() string {
	return f.label
}

// Raw returns the untrimmed remainder of the first matching line
func (f Field) Raw(text string) (string, bool) {
	m := f.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// String returns the trimmed value, or nil when the label is missing or the
// value is a placeholder such as "-" or "N/A".
func (f Field) String(text string) *string {
	raw, ok := f.Raw(text)
	if !ok {
		return nil
	}
	value := strings.TrimSpace(raw)
	if placeholders[value] {
		return nil
	}
	return &value
}

// Float returns the number immediately preceding unit, falling back to the
// first number on the line. unit is a regular expression fragment and may be
// empty. Returns nil when the label is missing or no number is present.
func (f Field) Float(text, unit string) *float64 {
	raw, ok := f.Raw(text)
	if !ok {
		return nil
	}
	return FloatWithUnit(raw, unit)
}

// Counter returns the integer value of a counter. Counters are never absent:
// a missing label or an unparsable value yields 0.
func (f Field) Counter(text string) int64 {
	raw, ok := f.Raw(text)
	if !ok {
		return 0
	}
	digits := counterRegex.FindString(strings.TrimSpace(raw))
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FloatWithUnit searches s for a number followed by unit, then for any number
func FloatWithUnit(s, unit string) *float64 {
	if unit != "" {
		if m := unitRegex(unit).FindStringSubmatch(s); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return &v
			}
		}
	}
	return FirstFloat(s)
}

// FirstFloat returns the first number in s, keeping sign and decimal point
func FirstFloat(s string) *float64 {
	token := numberRegex.FindString(s)
	if token == "" {
		return nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	return &v
}

func unitRegex(unit string) *regexp.Regexp {
	if cached, ok := unitRegexes.Load(unit); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(-?\d*\.?\d+)[ \t]*(?:` + unit + `)`)
	unitRegexes.Store(unit, re)
	return re
}

// Lane is a field whose value may repeat per hardware lane and wrap over
// several lines. Only the first printed value is kept.
type Lane struct {
	start *regexp.Regexp
	stop  *regexp.Regexp
}

// NewLane compiles a multi-lane matcher. The captured span runs from the
// label's colon up to the first following line matching stop (a regular
// expression fragment anchored after leading whitespace) or a dashed
// separator line.
func NewLane(label, stop string) Lane {
	return Lane{
		start: regexp.MustCompile(`(?m)^[ \t]*(?:` + label + `)[ \t]*:`),
		stop:  regexp.MustCompile(`(?m)^[ \t]*(?:(?:` + stop + `)|-{3,})`),
	}
}

// Span returns the whitespace-collapsed text captured for the field
func (l Lane) Span(text string) (string, bool) {
	span, ok := Section(text, l.start, l.stop)
	if !ok {
		return "", false
	}
	return strings.Join(strings.Fields(span), " "), true
}

// Float returns the lane 0 value
func (l Lane) Float(text string) *float64 {
	span, ok := l.Span(text)
	if !ok {
		return nil
	}
	return FirstFloat(span)
}
