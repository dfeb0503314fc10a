// Package extract pulls contact fields and the candidate name out of raw resume text.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fmuoria/resumeparser/internal/models"
)

const maxPortfolioLinks = 3

var (
	emailRe = regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	phoneRes = []*regexp.Regexp{
		// Indian mobile
		regexp.MustCompile(`(?:\+?91[\- ]?)?(?:0[\- ]?)?[6-9]\d{9}`),
		// International with country code
		regexp.MustCompile(`\+\d{1,3}[ \t\-]{0,3}\(?\d{1,4}\)?[ \t\-]{0,3}\d{3,5}[ \t\-]{0,3}\d{3,5}`),
		// North American
		regexp.MustCompile(`\(?\b\d{3}\)?[\-. \t]{0,3}\d{3}[\-. \t]{1,3}\d{4}\b`),
	}

	urlRes = []*regexp.Regexp{
		regexp.MustCompile(`https?://[\w\-./?=&%#~+:@]+`),
		regexp.MustCompile(`\bwww\.[\w\-./?=&%#~+]+`),
		regexp.MustCompile(`(?i)\b(?:linkedin|github)\.com/[\w\-./?=&%#~+]+`),
	}

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ContactInfo extracts emails, phone numbers and profile links
func ContactInfo(text string) models.Contact {
	contact := models.Contact{
		Emails:    dedupe(emailRe.FindAllString(text, -1)),
		Phones:    []string{},
		Portfolio: []string{},
	}

	for _, p := range findAllLongest(text, phoneRes) {
		contact.Phones = append(contact.Phones, NormalizePhone(p))
	}
	contact.Phones = dedupe(contact.Phones)

	for _, u := range findAllLongest(text, urlRes) {
		u = strings.TrimRight(u, ".,;:)")
		lower := strings.ToLower(u)
		switch {
		case strings.Contains(lower, "linkedin.com"):
			if contact.LinkedIn == nil {
				contact.LinkedIn = models.StringPtr(u)
			}
		case strings.Contains(lower, "github.com"):
			if contact.GitHub == nil {
				contact.GitHub = models.StringPtr(u)
			}
		default:
			if len(contact.Portfolio) < maxPortfolioLinks && !contains(contact.Portfolio, u) {
				contact.Portfolio = append(contact.Portfolio, u)
			}
		}
	}

	return contact
}

// NormalizePhone collapses runs of whitespace in a matched phone number
func NormalizePhone(p string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(p, " "))
}

type span struct {
	start, end int
}

// findAllLongest runs every pattern over text and keeps the longest of any
// overlapping matches, returned in order of appearance.
func findAllLongest(text string, patterns []*regexp.Regexp) []string {
	var spans []span
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		li, lj := spans[i].end-spans[i].start, spans[j].end-spans[j].start
		if li != lj {
			return li > lj
		}
		return spans[i].start < spans[j].start
	})

	var kept []span
	for _, s := range spans {
		overlaps := false
		for _, k := range kept {
			if s.start < k.end && k.start < s.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, s)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].start < kept[j].start })

	out := make([]string, 0, len(kept))
	for _, k := range kept {
		out = append(out, text[k.start:k.end])
	}
	return out
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
