// Package vocab holds the section header and skills vocabularies shared by
// the section splitter and the keyword matcher.
package vocab

import "strings"

// Header maps a canonical section key to the header lines that introduce it
type Header struct {
	Key     string   `json:"key" yaml:"key"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// Vocabulary is the set of known section headers and skills
type Vocabulary struct {
	Headers []Header
	Skills  []string
}

// Canonical section keys used by the profile builder
const (
	Summary        = "summary"
	Skills         = "skills"
	Education      = "education"
	Experience     = "experience"
	Projects       = "projects"
	Certifications = "certifications"
	Publications   = "publications"
	Awards         = "awards"
	Languages      = "languages"
	Interests      = "interests"
)

// DefaultHeaders returns the built-in section headers
func DefaultHeaders() []Header {
	return []Header{
		{Key: Summary, Aliases: []string{"summary", "professional summary", "career summary", "objective", "career objective", "profile", "about me"}},
		{Key: Skills, Aliases: []string{"skills", "technical skills", "key skills", "core competencies", "skills and tools"}},
		{Key: Education, Aliases: []string{"education", "academic background", "qualifications"}},
		{Key: Experience, Aliases: []string{"experience", "work experience", "professional experience", "employment history", "work history"}},
		{Key: Projects, Aliases: []string{"projects", "personal projects", "academic projects"}},
		{Key: Certifications, Aliases: []string{"certifications", "certificates", "licenses", "licenses and certifications"}},
		{Key: Publications, Aliases: []string{"publications"}},
		{Key: Awards, Aliases: []string{"awards", "achievements", "honors", "honours"}},
		{Key: Languages, Aliases: []string{"languages"}},
		{Key: Interests, Aliases: []string{"interests", "hobbies"}},
	}
}

// DefaultSkills returns the built-in skills vocabulary
func DefaultSkills() []string {
	return []string{
		"sql", "python", "excel", "microsoft excel", "power bi", "tableau",
		"jira", "confluence", "pandas", "numpy", "matplotlib", "seaborn",
		"scikit-learn", "machine learning", "statistics", "html", "css",
		"javascript", "git", "github", "agile", "stakeholder management",
		"financial analysis", "market research", "data analysis",
		"business intelligence",
		"golang", "java", "typescript", "react", "node.js", "docker",
		"kubernetes", "aws", "azure", "gcp", "postgresql", "mysql", "mongodb",
		"redis", "rest api", "graphql", "linux", "ci/cd", "terraform",
	}
}

// Default returns the built-in vocabulary
func Default() Vocabulary {
	return Vocabulary{Headers: DefaultHeaders(), Skills: DefaultSkills()}
}

// With returns a vocabulary using the given overrides where they are non-empty
func With(headers []Header, skills []string) Vocabulary {
	v := Default()
	if len(headers) > 0 {
		v.Headers = headers
	}
	if len(skills) > 0 {
		v.Skills = make([]string, 0, len(skills))
		seen := make(map[string]bool)
		for _, s := range skills {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			v.Skills = append(v.Skills, s)
		}
	}
	return v
}
