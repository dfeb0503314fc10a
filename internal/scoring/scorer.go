// Package scoring measures how many of a job description's skills a resume covers.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/fmuoria/resumeparser/internal/models"
)

// tokens keep inner dots and dashes ("node.js", "scikit-learn") and the
// symbols in "c++" and "c#"
var tokenRe = regexp.MustCompile(`[a-z0-9+#]+(?:[.\-][a-z0-9+#]+)*`)

// Tokenize lower-cases text and splits it into keyword tokens
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

type keyword struct {
	text   string
	tokens []string
}

// Scorer matches a fixed skills vocabulary against free text
type Scorer struct {
	keywords []keyword
}

// NewScorer creates a scorer for the given skills. Entries are lower-cased;
// duplicates and entries without any token are dropped.
func NewScorer(skills []string) *Scorer {
	s := &Scorer{}
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		tokens := Tokenize(skill)
		if len(tokens) == 0 || seen[skill] {
			continue
		}
		seen[skill] = true
		s.keywords = append(s.keywords, keyword{text: skill, tokens: tokens})
	}
	return s
}

// KeywordsIn returns the vocabulary entries found in text as whole token
// sequences, in vocabulary order. "java" does not match "javascript".
func (s *Scorer) KeywordsIn(text string) []string {
	tokens := Tokenize(text)
	positions := make(map[string][]int, len(tokens))
	for i, tok := range tokens {
		positions[tok] = append(positions[tok], i)
	}

	found := []string{}
	for _, kw := range s.keywords {
		for _, start := range positions[kw.tokens[0]] {
			if hasSequence(tokens, start, kw.tokens) {
				found = append(found, kw.text)
				break
			}
		}
	}
	return found
}

func hasSequence(tokens []string, start int, seq []string) bool {
	if start+len(seq) > len(tokens) {
		return false
	}
	for i, tok := range seq {
		if tokens[start+i] != tok {
			return false
		}
	}
	return true
}

// Score compares the skills named in jobText against those in resumeText.
// The score is matched/required, or 0 when the job names no known skill.
func (s *Scorer) Score(resumeText, jobText string) models.Match {
	jobKeywords := s.KeywordsIn(jobText)
	resumeKeywords := s.KeywordsIn(resumeText)

	inResume := make(map[string]bool, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		inResume[kw] = true
	}

	matched := []string{}
	missing := []string{}
	for _, kw := range jobKeywords {
		if inResume[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	var score float64
	if len(jobKeywords) > 0 {
		score = float64(len(matched)) / float64(len(jobKeywords))
	}

	return models.Match{
		Score:          score,
		ScorePercent:   math.Round(score*10000) / 100,
		JobKeywords:    jobKeywords,
		Matched:        matched,
		Missing:        missing,
		ResumeKeywords: resumeKeywords,
	}
}

// KeywordsIn is a convenience wrapper around Scorer.KeywordsIn
func KeywordsIn(text string, skills []string) []string {
	return NewScorer(skills).KeywordsIn(text)
}

// Score is a convenience wrapper around Scorer.Score
func Score(resumeText, jobText string, skills []string) models.Match {
	return NewScorer(skills).Score(resumeText, jobText)
}
