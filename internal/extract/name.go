package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	nameScanLines    = 7
	nameMaxLen       = 70
	nameMaxWords     = 5
	nameMinCapsRatio = 0.6
)

var linkLikeRe = regexp.MustCompile(`(?i)@|http|www`)

// document titles that often sit above the name
var documentTitles = map[string]bool{
	"resume":           true,
	"résumé":           true,
	"curriculum vitae": true,
	"cv":               true,
	"biodata":          true,
	"bio data":         true,
	"bio-data":         true,
}

func isDocumentTitle(line string) bool {
	norm := strings.Join(strings.Fields(strings.ToLower(strings.Trim(line, " :.-"))), " ")
	return documentTitles[norm]
}

// isShouted reports whether a single word is written entirely in capitals
func isShouted(words []string) bool {
	if len(words) != 1 {
		return false
	}
	return strings.ToUpper(words[0]) == words[0] && strings.ToLower(words[0]) != words[0]
}

// SplitLines returns the trimmed, non-empty lines of text
func SplitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// GuessName returns the first short, mostly capitalised line near the top of
// the resume that is neither a link, a section header nor a document title
// such as "RESUME". It returns "" when no line qualifies.
func GuessName(lines []string, isHeader func(string) bool) string {
	for i := 0; i < min(nameScanLines, len(lines)); i++ {
		line := lines[i]
		if utf8.RuneCountInString(line) > nameMaxLen {
			continue
		}
		if linkLikeRe.MatchString(line) {
			continue
		}
		if isHeader != nil && isHeader(line) {
			continue
		}
		if isDocumentTitle(line) {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 1 || len(words) > nameMaxWords || isShouted(words) {
			continue
		}
		caps := 0
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			if unicode.IsUpper(r) {
				caps++
			}
		}
		if float64(caps)/float64(len(words)) >= nameMinCapsRatio {
			return line
		}
	}
	return ""
}
