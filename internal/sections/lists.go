package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxSkillLen drops sentence fragments that slip into a skills block
const maxSkillLen = 40

var (
	bulletRe    = regexp.MustCompile(`^[-*•·▪●◦–]\s*`)
	itemSepRe   = regexp.MustCompile(`[,;|•·▪●]|\s[-–—]\s`)
	spaceRunsRe = regexp.MustCompile(`\s+`)
)

func stripBullet(line string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(line), ""))
}

// stripLabel removes a short "Label:" prefix such as "Languages:" or
// "Tools & Platforms:" from a skills line.
func stripLabel(line string) string {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return line
	}
	if len(strings.Fields(line[:idx])) > 3 {
		return line
	}
	return strings.TrimSpace(line[idx+1:])
}

func splitItems(line string) []string {
	var items []string
	for _, part := range itemSepRe.Split(line, -1) {
		part = strings.TrimRight(strings.TrimSpace(part), ".")
		part = spaceRunsRe.ReplaceAllString(part, " ")
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// Skills lower-cases and splits a skills block on commas, semicolons, pipes
// and bullets. Slashes are kept so entries like "ci/cd" survive.
func Skills(lines []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, line := range lines {
		line = stripLabel(stripBullet(line))
		for _, item := range splitItems(line) {
			item = strings.ToLower(item)
			if utf8.RuneCountInString(item) > maxSkillLen || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// Languages splits a languages block into entries, preserving case
func Languages(lines []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, item := range splitItems(stripBullet(line)) {
			if seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// Certifications returns one entry per non-empty line with bullets removed
func Certifications(lines []string) []string {
	out := []string{}
	for _, line := range lines {
		if line = stripBullet(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Summary joins the summary block into a single paragraph
func Summary(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
