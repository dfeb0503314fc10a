package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmuoria/resumeparser/internal/models"
)

func TestEducation(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []models.EducationEntry
	}{
		{
			name: "Degree with details on following lines",
			lines: []string{
				"B.Tech in Computer Science",
				"Indian Institute of Technology, Delhi",
				"2015 - 2019",
				"CGPA: 8.6",
			},
			want: []models.EducationEntry{{
				Degree:      "B.Tech in Computer Science",
				Institution: "Indian Institute of Technology",
				Year:        "2019",
				Grade:       "8.6",
			}},
		},
		{
			name: "Everything on one line",
			lines: []string{
				"Master of Science in Statistics, University of Leeds, 2021, GPA 3.8",
			},
			want: []models.EducationEntry{{
				Degree:      "Master of Science in Statistics, University of Leeds, 2021, GPA 3.8",
				Institution: "University of Leeds",
				Year:        "2021",
				Grade:       "3.8",
			}},
		},
		{
			name: "Two degrees",
			lines: []string{
				"MBA, Finance",
				"XLRI School of Management | 2022",
				"BS Economics",
				"Percentage: 78%",
			},
			want: []models.EducationEntry{
				{Degree: "MBA, Finance", Institution: "XLRI School of Management", Year: "2022"},
				{Degree: "BS Economics", Grade: "78%"},
			},
		},
		{
			name:  "Lowercase two letter words are not degrees",
			lines: []string{"I want to be a data analyst"},
			want:  []models.EducationEntry{},
		},
		{
			name:  "Institution without degree",
			lines: []string{"Springfield High School, 2014"},
			want:  []models.EducationEntry{{Institution: "Springfield High School", Year: "2014"}},
		},
		{
			name:  "Empty",
			lines: nil,
			want:  []models.EducationEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Education(tt.lines))
		})
	}
}

func TestExperience_RoleAtCompany(t *testing.T) {
	got := Experience([]string{
		"Data Analyst at Acme Corp",
		"Jan 2020 - Present",
		"- Built weekly sales dashboards in Power BI",
		"• Automated reporting with Python",
		"Junior Analyst @ Initech",
		"06/2018 to 12/2019",
		"* Cleaned CRM data",
	})

	require.Len(t, got, 2)
	assert.Equal(t, models.ExperienceEntry{
		Role:    "Data Analyst",
		Company: "Acme Corp",
		Dates:   "Jan 2020 - Present",
		Bullets: []string{"Built weekly sales dashboards in Power BI", "Automated reporting with Python"},
	}, got[0])
	assert.Equal(t, models.ExperienceEntry{
		Role:    "Junior Analyst",
		Company: "Initech",
		Dates:   "06/2018 to 12/2019",
		Bullets: []string{"Cleaned CRM data"},
	}, got[1])
}

func TestExperience_TitleAndDatesOnOneLine(t *testing.T) {
	got := Experience([]string{
		"Software Engineer | Globex | March 2019 – Dec 2021",
		"- Shipped the billing service",
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Software Engineer", got[0].Role)
	assert.Equal(t, "Globex", got[0].Company)
	assert.Equal(t, "March 2019 – Dec 2021", got[0].Dates)
	assert.Equal(t, []string{"Shipped the billing service"}, got[0].Bullets)
}

func TestExperience_CompanyOnOwnLine(t *testing.T) {
	got := Experience([]string{
		"Software Engineer",
		"Google",
		"2017 - 2019",
		"- Maintained internal tooling",
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Software Engineer", got[0].Role)
	assert.Equal(t, "Google", got[0].Company)
	assert.Equal(t, "2017 - 2019", got[0].Dates)
}

func TestExperience_CompanyWithDates(t *testing.T) {
	got := Experience([]string{
		"Business Analyst",
		"Umbrella Ltd   Feb 2016 - Jan 2018",
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Business Analyst", got[0].Role)
	assert.Equal(t, "Umbrella Ltd", got[0].Company)
	assert.Equal(t, "Feb 2016 - Jan 2018", got[0].Dates)
	assert.Equal(t, []string{}, got[0].Bullets)
}

func TestExperience_DescriptionLines(t *testing.T) {
	got := Experience([]string{
		"Analyst at Hooli",
		"responsible for quarterly forecasting across regions.",
		"led a migration from 2019 to 2020 for the finance team.",
		"ok",
	})

	require.Len(t, got, 1)
	assert.Equal(t, "2019 to 2020", got[0].Dates)
	assert.Equal(t, []string{
		"responsible for quarterly forecasting across regions.",
		"led a migration from 2019 to 2020 for the finance team.",
	}, got[0].Description)
}

func TestExperience_ProseWithAtStaysDescription(t *testing.T) {
	got := Experience([]string{
		"Senior Engineer at Acme Corp",
		"Jan 2020 - Present",
		"Worked at the intersection of data and product for two years",
		"Worked at Initech for two years on billing",
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Senior Engineer", got[0].Role)
	assert.Equal(t, "Acme Corp", got[0].Company)
	assert.Equal(t, "Jan 2020 - Present", got[0].Dates)
	assert.Equal(t, []string{
		"Worked at the intersection of data and product for two years",
		"Worked at Initech for two years on billing",
	}, got[0].Description)
}

func TestIsRoleAtCompany(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Data Analyst at Acme Corp", true},
		{"Intern @ Initech", true},
		{"Analyst at Bank of America", true},
		{"Worked at the intersection of data and product", false},
		{"Worked at Initech for two years on billing", false},
		{"Joined at Acme Corp.", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isRoleAtCompany(tt.line), tt.line)
	}
}

func TestExperience_BulletsWithoutTitle(t *testing.T) {
	got := Experience([]string{"- Did things", "- Did more things"})

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Role)
	assert.Equal(t, []string{"Did things", "Did more things"}, got[0].Bullets)
}

func TestExperience_Empty(t *testing.T) {
	assert.Equal(t, []models.ExperienceEntry{}, Experience(nil))
	assert.Equal(t, []models.ExperienceEntry{}, Experience([]string{"ok"}))
}
