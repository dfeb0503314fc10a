// Package profile turns raw resume text into a structured profile.
package profile

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/fmuoria/resumeparser/internal/extract"
	"github.com/fmuoria/resumeparser/internal/models"
	"github.com/fmuoria/resumeparser/internal/scoring"
	"github.com/fmuoria/resumeparser/internal/sections"
	"github.com/fmuoria/resumeparser/internal/vocab"
)

// Builder builds profiles against a fixed vocabulary
type Builder struct {
	matcher *sections.Matcher
	scorer  *scoring.Scorer
}

// NewBuilder creates a builder for the given vocabulary
func NewBuilder(v vocab.Vocabulary) *Builder {
	return &Builder{
		matcher: sections.NewMatcher(v.Headers),
		scorer:  scoring.NewScorer(v.Skills),
	}
}

// Build extracts contact details, the candidate name and every known section
// from text. The result depends only on its inputs.
func (b *Builder) Build(text string, src models.Source) models.Profile {
	lines := extract.SplitLines(text)
	secs := sections.Split(lines, b.matcher)

	if src.File != "" {
		src.File = filepath.Base(src.File)
	}
	src.CharCount = utf8.RuneCountInString(text)

	p := models.Profile{
		Source:         src,
		Name:           models.StringPtr(extract.GuessName(lines, b.matcher.IsHeader)),
		Contact:        extract.ContactInfo(text),
		Summary:        models.StringPtr(sections.Summary(secs.Lines(vocab.Summary))),
		Education:      sections.Education(secs.Lines(vocab.Education)),
		Experience:     sections.Experience(secs.Lines(vocab.Experience)),
		Certifications: sections.Certifications(secs.Lines(vocab.Certifications)),
		Languages:      sections.Languages(secs.Lines(vocab.Languages)),
		Sections:       secs.Blocks(),
	}

	if secs.Has(vocab.Skills) {
		p.Skills = sections.Skills(secs.Lines(vocab.Skills))
	} else {
		p.Skills = b.scorer.KeywordsIn(text)
	}

	return p
}

// Build is a convenience wrapper around Builder.Build
func Build(text string, src models.Source, v vocab.Vocabulary) models.Profile {
	return NewBuilder(v).Build(text, src)
}
