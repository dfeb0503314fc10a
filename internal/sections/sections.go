// Package sections splits resume lines into named sections and parses the
// contents of the well-known ones.
package sections

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fmuoria/resumeparser/internal/vocab"
)

const (
	// maxHeaderWords bounds compound headers such as "Skills & Tools"
	maxHeaderWords = 5
	// maxContinuationWords bounds the part after "&" or "and"
	maxContinuationWords = 3
)

const headerTrimSet = " \t-*•·▪●#|=_"

type alias struct {
	key  string
	text string
}

// Matcher recognises section header lines
type Matcher struct {
	aliases []alias
}

// NewMatcher builds a matcher; longer aliases are tried first
func NewMatcher(headers []vocab.Header) *Matcher {
	m := &Matcher{}
	for _, h := range headers {
		for _, a := range h.Aliases {
			a = normalizeHeader(a)
			if a == "" {
				continue
			}
			m.aliases = append(m.aliases, alias{key: h.Key, text: a})
		}
	}
	sort.SliceStable(m.aliases, func(i, j int) bool {
		return len(m.aliases[i].text) > len(m.aliases[j].text)
	})
	return m
}

// Match reports whether line is a section header. rest holds any content
// written after "Header:" on the same line, in its original case.
func (m *Matcher) Match(line string) (key, rest string, ok bool) {
	norm := normalizeHeader(line)
	if norm == "" {
		return "", "", false
	}
	base := strings.TrimRight(norm, ": ")

	for _, a := range m.aliases {
		if base == a.text {
			return a.key, "", true
		}
		if !strings.HasPrefix(norm, a.text) {
			continue
		}

		remainder := strings.TrimSpace(norm[len(a.text):])
		if strings.HasPrefix(remainder, ":") {
			if idx := strings.Index(line, ":"); idx >= 0 {
				rest = strings.TrimSpace(line[idx+1:])
			}
			return a.key, rest, true
		}
		if (strings.HasPrefix(remainder, "& ") || strings.HasPrefix(remainder, "and ")) &&
			len(strings.Fields(base)) <= maxHeaderWords &&
			isTitleContinuation(line, len(strings.Fields(a.text))) {
			return a.key, "", true
		}
	}
	return "", "", false
}

// IsHeader reports whether line is a section header
func (m *Matcher) IsHeader(line string) bool {
	_, _, ok := m.Match(line)
	return ok
}

// isTitleContinuation checks the words after the alias and its "&"/"and" in
// the original line: a short run of capitalised words, as in "Awards and
// Honors", and not prose like "Skills and experience in data".
func isTitleContinuation(line string, aliasWords int) bool {
	words := strings.Fields(strings.Trim(strings.TrimSpace(line), headerTrimSet))
	if len(words) <= aliasWords+1 {
		return false
	}
	cont := words[aliasWords+1:]
	if len(cont) > maxContinuationWords {
		return false
	}
	for _, w := range cont {
		switch strings.ToLower(w) {
		case "&", "and", "of":
			continue
		}
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, headerTrimSet)
	return strings.Join(strings.Fields(s), " ")
}

// Sections holds resume lines bucketed by canonical section key
type Sections struct {
	// Preamble holds the lines before the first header
	Preamble []string

	order []string
	lines map[string][]string
}

func newSections() *Sections {
	return &Sections{lines: make(map[string][]string)}
}

// Split scans lines top to bottom and assigns each line to the most recent
// header. A header that appears twice keeps appending to the same bucket.
func Split(lines []string, m *Matcher) *Sections {
	s := newSections()
	current := ""

	for _, line := range lines {
		if key, rest, ok := m.Match(line); ok {
			current = key
			s.open(key)
			if rest != "" {
				s.lines[key] = append(s.lines[key], rest)
			}
			continue
		}

		if current == "" {
			s.Preamble = append(s.Preamble, line)
			continue
		}
		s.lines[current] = append(s.lines[current], line)
	}

	return s
}

func (s *Sections) open(key string) {
	if _, ok := s.lines[key]; ok {
		return
	}
	s.order = append(s.order, key)
	s.lines[key] = []string{}
}

// Has reports whether a header for key was seen
func (s *Sections) Has(key string) bool {
	_, ok := s.lines[key]
	return ok
}

// Lines returns the lines bucketed under key
func (s *Sections) Lines(key string) []string {
	return s.lines[key]
}

// Keys returns the section keys in order of first appearance
func (s *Sections) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Blocks returns each section's lines joined by newlines
func (s *Sections) Blocks() map[string]string {
	out := make(map[string]string, len(s.lines))
	for key, lines := range s.lines {
		out[key] = strings.Join(lines, "\n")
	}
	return out
}
