package models

// Source describes the document a profile was built from
type Source struct {
	File      string `json:"file"`
	Format    string `json:"format"`
	CharCount int    `json:"char_count"`
}

// Contact holds the contact fields found in a resume.
// Absent scalars are nil; list fields are never nil.
type Contact struct {
	Emails    []string `json:"emails"`
	Phones    []string `json:"phones"`
	LinkedIn  *string  `json:"linkedin"`
	GitHub    *string  `json:"github"`
	Portfolio []string `json:"portfolio"`
}

// EducationEntry is a single degree block from the education section
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	Grade       string `json:"grade,omitempty"`
}

// ExperienceEntry is a single position from the experience section
type ExperienceEntry struct {
	Role        string   `json:"role,omitempty"`
	Company     string   `json:"company,omitempty"`
	Dates       string   `json:"dates,omitempty"`
	Bullets     []string `json:"bullets"`
	Description []string `json:"description,omitempty"`
}

// Profile is the structured extraction written to resume_profile.json
type Profile struct {
	Source         Source            `json:"source"`
	Name           *string           `json:"name"`
	Contact        Contact           `json:"contact"`
	Summary        *string           `json:"summary"`
	Skills         []string          `json:"skills"`
	Education      []EducationEntry  `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
	Certifications []string          `json:"certifications"`
	Languages      []string          `json:"languages"`
	Sections       map[string]string `json:"sections"`
}

// Match is the keyword coverage result written to job_match.json
type Match struct {
	Score          float64  `json:"score"`         // 0-1
	ScorePercent   float64  `json:"score_percent"` // 0-100
	JobKeywords    []string `json:"job_keywords"`
	Matched        []string `json:"matched"`
	Missing        []string `json:"missing"`
	ResumeKeywords []string `json:"resume_keywords"`
}

// Report bundles a profile with an optional job match
type Report struct {
	Profile Profile `json:"profile"`
	Match   *Match  `json:"match"`
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
