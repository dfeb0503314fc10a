package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmuoria/resumeparser/internal/models"
	"github.com/fmuoria/resumeparser/internal/vocab"
)

const sampleResume = `Priya Sharma
priya.sharma@example.com | +91 98765 43210
linkedin.com/in/priyasharma
Summary
Data analyst with four years of experience in retail analytics.
Skills: SQL, Python, Power BI, Excel
Experience
Data Analyst at Acme Retail
Jan 2021 - Present
- Built sales dashboards in Power BI
Education
B.Tech in Computer Science
Indian Institute of Technology, Delhi
2016 - 2020
Certifications
- Google Data Analytics Certificate
Languages
English, Hindi`

func TestBuild(t *testing.T) {
	p := Build(sampleResume, models.Source{File: "/tmp/in/priya.txt", Format: "txt"}, vocab.Default())

	require.NotNil(t, p.Name)
	assert.Equal(t, "Priya Sharma", *p.Name)
	assert.Equal(t, "priya.txt", p.Source.File)
	assert.Equal(t, "txt", p.Source.Format)
	assert.Equal(t, len([]rune(sampleResume)), p.Source.CharCount)

	assert.Equal(t, []string{"priya.sharma@example.com"}, p.Contact.Emails)
	assert.Equal(t, []string{"+91 98765 43210"}, p.Contact.Phones)
	require.NotNil(t, p.Contact.LinkedIn)
	assert.Equal(t, "linkedin.com/in/priyasharma", *p.Contact.LinkedIn)
	assert.Nil(t, p.Contact.GitHub)

	require.NotNil(t, p.Summary)
	assert.Equal(t, "Data analyst with four years of experience in retail analytics.", *p.Summary)
	assert.Equal(t, []string{"sql", "python", "power bi", "excel"}, p.Skills)

	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Data Analyst", p.Experience[0].Role)
	assert.Equal(t, "Acme Retail", p.Experience[0].Company)
	assert.Equal(t, "Jan 2021 - Present", p.Experience[0].Dates)
	assert.Equal(t, []string{"Built sales dashboards in Power BI"}, p.Experience[0].Bullets)

	assert.Equal(t, []models.EducationEntry{{
		Degree:      "B.Tech in Computer Science",
		Institution: "Indian Institute of Technology",
		Year:        "2020",
	}}, p.Education)

	assert.Equal(t, []string{"Google Data Analytics Certificate"}, p.Certifications)
	assert.Equal(t, []string{"English", "Hindi"}, p.Languages)

	assert.Len(t, p.Sections, 6)
	assert.Equal(t, "B.Tech in Computer Science\nIndian Institute of Technology, Delhi\n2016 - 2020", p.Sections[vocab.Education])
}

func TestBuild_SkillsFallBackToVocabulary(t *testing.T) {
	p := Build("Jane Doe\nExperienced with SQL and Tableau.", models.Source{}, vocab.Default())

	assert.Equal(t, []string{"sql", "tableau"}, p.Skills)
	assert.Empty(t, p.Sections)
}

func TestBuild_CustomVocabulary(t *testing.T) {
	v := vocab.With(
		[]vocab.Header{{Key: vocab.Skills, Aliases: []string{"toolbox"}}},
		[]string{"Rust"},
	)

	p := Build("Sam Lee\nToolbox\nRust, Zig", models.Source{}, v)
	assert.Equal(t, []string{"rust", "zig"}, p.Skills)

	p = Build("Sam Lee\nWrites Rust daily", models.Source{}, v)
	assert.Equal(t, []string{"rust"}, p.Skills)
}

func TestBuild_EmptyText(t *testing.T) {
	p := Build("", models.Source{File: "blank.pdf", Format: "pdf"}, vocab.Default())

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Nil(t, raw["name"])
	assert.Nil(t, raw["summary"])
	for _, key := range []string{"skills", "education", "experience", "certifications", "languages"} {
		assert.Equal(t, []any{}, raw[key], key)
	}
	assert.Equal(t, map[string]any{}, raw["sections"])
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder(vocab.Default())
	src := models.Source{File: "priya.txt", Format: "txt"}

	first, err := json.Marshal(b.Build(sampleResume, src))
	require.NoError(t, err)
	second, err := json.Marshal(b.Build(sampleResume, src))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
