package common

import (
	"strings"
	"unicode"
)

// Replacement maps a long interface prefix to its short form
type Replacement struct {
	Long  string
	Short string
}

// Normalizer canonicalizes interface names so that every parser and every
// later reader produce the same lookup key.
type Normalizer struct {
	replacements []Replacement
}

// NewNormalizer returns a normalizer that applies the first matching
// replacement, in the order given.
func NewNormalizer(replacements ...Replacement) *Normalizer {
	return &Normalizer{replacements: replacements}
}

// Normalize strips surrounding whitespace and commas, then replaces the first
// matching long prefix once. Names without a known prefix pass through.
func (n *Normalizer) Normalize(name string) string {
	name = trimName(name)
	if n == nil {
		return name
	}
	for _, r := range n.replacements {
		if strings.HasPrefix(name, r.Long) {
			return trimName(r.Short + name[len(r.Long):])
		}
	}
	return name
}

func trimName(name string) string {
	return strings.TrimFunc(name, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
