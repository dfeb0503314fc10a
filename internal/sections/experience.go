package sections

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fmuoria/resumeparser/internal/models"
)

const (
	// lines shorter than this that are neither bullets nor titles are noise
	minDescriptionLen = 10
	maxTitleWords     = 8
	maxSplitTitle     = 12
	maxCompanyWords   = 5
)

var (
	dateRangeRe = func() *regexp.Regexp {
		month := `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`
		year := `(?:19|20)\d{2}`
		numeric := `(?:0?[1-9]|1[0-2])/` + year
		point := `(?:\b` + month + `\s*,?\s*` + year + `|\b` + numeric + `|\b` + year + `)`
		end := `(?:` + point + `|present|current|now|date)`
		sep := `\s*(?:-|–|—|to|until)\s*`
		return regexp.MustCompile(`(?i)` + point + sep + end + `\b`)
	}()

	atRe         = regexp.MustCompile(`(?i)\s+(?:@|at)\s+`)
	titleSepRe   = regexp.MustCompile(`\s+[-–—|]\s+|\s*\|\s*`)
	bulletLineRe = regexp.MustCompile(`^[-*•·▪●◦–]\s+`)
)

const dateTrimSet = " ,|-–—()[]:"

// Experience groups an experience block into entries. Title lines start a
// new entry, date ranges attach to the current one and bullet lines become
// its bullets. A single line may carry both a title and a date range.
func Experience(lines []string) []models.ExperienceEntry {
	entries := []models.ExperienceEntry{}
	var cur *models.ExperienceEntry

	flush := func() {
		if cur != nil && (cur.Role != "" || cur.Company != "" || len(cur.Bullets) > 0 || len(cur.Description) > 0) {
			entries = append(entries, *cur)
		}
		cur = nil
	}
	ensure := func() {
		if cur == nil {
			cur = &models.ExperienceEntry{Bullets: []string{}}
		}
	}
	startEntry := func(title string) {
		flush()
		ensure()
		cur.Role, cur.Company = splitTitle(title)
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if bulletLineRe.MatchString(line) {
			ensure()
			if b := stripBullet(line); b != "" {
				cur.Bullets = append(cur.Bullets, b)
			}
			continue
		}

		if loc := dateRangeRe.FindStringIndex(line); loc != nil {
			dates := line[loc[0]:loc[1]]
			rest := collapse(strings.Trim(line[:loc[0]], dateTrimSet) + " " + strings.Trim(line[loc[1]:], dateTrimSet))

			switch {
			case rest == "":
				ensure()
				cur.Dates = dates
			case isCompanyLine(cur, rest):
				cur.Company = rest
				cur.Dates = dates
			case isTitleLike(rest):
				startEntry(rest)
				cur.Dates = dates
			default:
				ensure()
				if cur.Dates == "" {
					cur.Dates = dates
				}
				cur.Description = append(cur.Description, line)
			}
			continue
		}

		if isCompanyLine(cur, line) {
			cur.Company = line
			continue
		}

		if isTitleLike(line) {
			startEntry(line)
			continue
		}

		if utf8.RuneCountInString(line) > minDescriptionLen {
			ensure()
			cur.Description = append(cur.Description, line)
		}
	}
	flush()

	return entries
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isTitleLike reports whether line reads like "Role at Company",
// "Role | Company" or a short run of capitalised words.
func isTitleLike(line string) bool {
	if atRe.MatchString(line) {
		return isRoleAtCompany(line)
	}

	words := strings.Fields(line)
	if parts := titleSepRe.Split(line, 2); len(parts) == 2 &&
		strings.TrimSpace(parts[0]) != "" && strings.TrimSpace(parts[1]) != "" &&
		len(words) <= maxSplitTitle {
		return true
	}

	if len(words) == 0 || len(words) > maxTitleWords || strings.HasSuffix(line, ".") {
		return false
	}
	caps := capitalised(words)
	return caps >= 2 && caps*2 >= len(words)
}

// isRoleAtCompany accepts "Role at Company" only when the role is a short
// capitalised title and the company is mostly capitalised words, so prose
// such as "worked at the intersection of..." stays a description.
func isRoleAtCompany(line string) bool {
	if strings.HasSuffix(line, ".") || len(strings.Fields(line)) > maxSplitTitle {
		return false
	}
	parts := atRe.Split(line, 2)
	if len(parts) != 2 {
		return false
	}
	role, company := strings.Fields(parts[0]), strings.Fields(parts[1])
	if len(role) == 0 || len(role) > maxTitleWords || len(company) == 0 {
		return false
	}
	return capitalised(role)*2 >= len(role) && capitalised(company)*2 >= len(company)
}

// isCompanyLine catches a company name written on its own line directly
// below a role.
func isCompanyLine(cur *models.ExperienceEntry, line string) bool {
	if cur == nil || cur.Role == "" || cur.Company != "" {
		return false
	}
	if len(cur.Bullets) > 0 || len(cur.Description) > 0 || cur.Dates != "" {
		return false
	}
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > maxCompanyWords || strings.HasSuffix(line, ".") {
		return false
	}
	if atRe.MatchString(line) || titleSepRe.MatchString(line) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(words[0])
	return unicode.IsUpper(r)
}

func capitalised(words []string) int {
	n := 0
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}

// splitTitle separates the role from the company on "at", "@", a dash or a pipe
func splitTitle(line string) (role, company string) {
	if parts := atRe.Split(line, 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	if parts := titleSepRe.Split(line, 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.Trim(strings.TrimSpace(parts[1]), "|")
	}
	return strings.TrimSpace(line), ""
}
