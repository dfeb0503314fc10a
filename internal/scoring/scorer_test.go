package scoring

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmuoria/resumeparser/internal/vocab"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Dotted and dashed tokens",
			input: "Node.js, scikit-learn.",
			want:  []string{"node.js", "scikit-learn"},
		},
		{
			name:  "Symbols in language names",
			input: "C++ and C#",
			want:  []string{"c++", "and", "c#"},
		},
		{
			name:  "Slash splits",
			input: "CI/CD",
			want:  []string{"ci", "cd"},
		},
		{
			name:  "Empty string",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeywordsIn(t *testing.T) {
	skills := []string{"java", "javascript", "power bi", "ci/cd", "sql", "go"}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "Whole words only",
			text: "Experienced in JavaScript and Power BI, some CI/CD.",
			want: []string{"javascript", "power bi", "ci/cd"},
		},
		{
			name: "Vocabulary order",
			text: "SQL first, then Java",
			want: []string{"java", "sql"},
		},
		{
			name: "Multi-word skill split across words is not matched",
			text: "power users of BI tools",
			want: []string{},
		},
		{
			name: "Hyphenated word does not match its parts",
			text: "go-to-market strategy",
			want: []string{},
		},
		{
			name: "Multi-word skill at end of text",
			text: "Dashboards in Power BI",
			want: []string{"power bi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordsIn(tt.text, skills))
		})
	}
}

func TestNewScorer_DropsDuplicatesAndBlanks(t *testing.T) {
	s := NewScorer([]string{"SQL", " sql ", "", "!!", "Python"})

	assert.Equal(t, []string{"sql", "python"}, s.KeywordsIn("python sql"))
}

func TestScore(t *testing.T) {
	skills := []string{"sql", "python", "tableau", "excel", "power bi"}

	tests := []struct {
		name        string
		resume      string
		job         string
		wantScore   float64
		wantPercent float64
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "Half covered",
			resume:      "Python and SQL every day",
			job:         "Looking for SQL, Python, Tableau and Excel",
			wantScore:   0.5,
			wantPercent: 50,
			wantMatched: []string{"sql", "python"},
			wantMissing: []string{"tableau", "excel"},
		},
		{
			name:        "Rounded percent",
			resume:      "sql python",
			job:         "sql python tableau",
			wantScore:   2.0 / 3.0,
			wantPercent: 66.67,
			wantMatched: []string{"sql", "python"},
			wantMissing: []string{"tableau"},
		},
		{
			name:        "Fully covered",
			resume:      "Excel wizard",
			job:         "excel",
			wantScore:   1,
			wantPercent: 100,
			wantMatched: []string{"excel"},
			wantMissing: []string{},
		},
		{
			name:        "Job names no known skill",
			resume:      "Python and SQL",
			job:         "We value kindness",
			wantScore:   0,
			wantPercent: 0,
			wantMatched: []string{},
			wantMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(tt.resume, tt.job, skills)

			assert.InDelta(t, tt.wantScore, m.Score, 1e-9)
			assert.InDelta(t, tt.wantPercent, m.ScorePercent, 1e-9)
			assert.Equal(t, tt.wantMatched, m.Matched)
			assert.Equal(t, tt.wantMissing, m.Missing)
			assert.Equal(t, len(tt.wantMatched)+len(tt.wantMissing), len(m.JobKeywords))
		})
	}
}

func TestScore_ResumeKeywords(t *testing.T) {
	m := Score("Tableau, Excel and Power BI", "", []string{"sql", "tableau", "excel", "power bi"})

	assert.Equal(t, []string{"tableau", "excel", "power bi"}, m.ResumeKeywords)
	assert.NotNil(t, m.JobKeywords)
	assert.Empty(t, m.JobKeywords)
}

func TestScore_DefaultVocabularyIgnoresEverydayWords(t *testing.T) {
	m := Score(
		"Python and SQL developer",
		"We need Python and SQL. Ready to go from day one; rest assured.",
		vocab.DefaultSkills(),
	)

	assert.Equal(t, []string{"sql", "python"}, m.JobKeywords)
	assert.Empty(t, m.Missing)
	assert.Equal(t, 100.0, m.ScorePercent)

	m = Score("Built a REST API in Golang", "Golang and REST API design", vocab.DefaultSkills())
	assert.Equal(t, []string{"golang", "rest api"}, m.JobKeywords)
	assert.Equal(t, 1.0, m.Score)
}
