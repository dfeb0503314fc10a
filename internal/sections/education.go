package sections

import (
	"regexp"
	"strings"

	"github.com/fmuoria/resumeparser/internal/models"
)

var (
	degreeRe = regexp.MustCompile(`(?i)\b(?:` +
		`b\.e\.?|b\.a\.?|m\.e\.?|m\.a\.?|b\.s\.?|m\.s\.?|` +
		`b\.?\s?tech|m\.?\s?tech|b\.?\s?sc|m\.?\s?sc|b\.?\s?com|m\.?\s?com|` +
		`bachelor'?s?|master'?s?|mba|ph\.?\s?d|doctorate|diploma|associate'?s?` +
		`)\b`)

	// two-letter degrees without dots only count when written in capitals
	degreeAbbrRe = regexp.MustCompile(`\b(?:BE|BA|BS|ME|MA|MS)\b`)

	yearRe        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic|iit|nit)\b`)
	gradeRe       = regexp.MustCompile(`(?i)\b(?:cgpa|gpa|percentage)\b\s*[:=\-]?\s*([0-9]{1,3}(?:\.[0-9]{1,2})?%?)`)
	partSepRe     = regexp.MustCompile(`\s*[,|]\s*|\s+[-–—]\s+`)
)

func isDegree(line string) bool {
	return degreeRe.MatchString(line) || degreeAbbrRe.MatchString(line)
}

// institutionPart returns the comma or pipe separated part of line that
// names the institution, or the whole line when it cannot be isolated.
func institutionPart(line string) string {
	for _, part := range partSepRe.Split(line, -1) {
		if institutionRe.MatchString(part) {
			return strings.TrimSpace(part)
		}
	}
	return line
}

// Education groups an education block into entries. Each line naming a
// degree starts a new entry; institution, year and grade lines fill in the
// current one.
func Education(lines []string) []models.EducationEntry {
	entries := []models.EducationEntry{}
	var cur models.EducationEntry

	flush := func() {
		if cur != (models.EducationEntry{}) {
			entries = append(entries, cur)
		}
		cur = models.EducationEntry{}
	}

	for _, line := range lines {
		line = stripBullet(line)
		if line == "" {
			continue
		}

		if isDegree(line) {
			flush()
			cur.Degree = line
		}

		if years := yearRe.FindAllString(line, -1); len(years) > 0 {
			cur.Year = years[len(years)-1]
		}
		if cur.Institution == "" && institutionRe.MatchString(line) {
			cur.Institution = institutionPart(line)
		}
		if m := gradeRe.FindStringSubmatch(line); m != nil {
			cur.Grade = m[1]
		}
	}
	flush()

	return entries
}
