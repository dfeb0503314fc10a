// Package analyzer runs the resume pipeline: load, build the profile and
// optionally score it against a job description.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/fmuoria/resumeparser/internal/ingestion"
	"github.com/fmuoria/resumeparser/internal/models"
	"github.com/fmuoria/resumeparser/internal/profile"
	"github.com/fmuoria/resumeparser/internal/scoring"
	"github.com/fmuoria/resumeparser/internal/vocab"
)

// ErrNoReport is returned by GetReport before any analysis has finished
var ErrNoReport = errors.New("no report available, analyze a resume first")

// ProgressCallback is called to report progress during processing
type ProgressCallback func(current, total int, message string)

// Analyzer orchestrates a single resume analysis and keeps the latest report
type Analyzer struct {
	builder    *profile.Builder
	scorer     *scoring.Scorer
	report     *models.Report
	mu         sync.RWMutex
	progressCb ProgressCallback
}

// New creates an analyzer for the given vocabulary
func New(v vocab.Vocabulary) *Analyzer {
	return &Analyzer{
		builder: profile.NewBuilder(v),
		scorer:  scoring.NewScorer(v.Skills),
	}
}

// SetProgressCallback sets the progress callback function
func (a *Analyzer) SetProgressCallback(cb ProgressCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.progressCb = cb
}

// reportProgress calls the progress callback if set
func (a *Analyzer) reportProgress(current, total int, message string) {
	a.mu.RLock()
	cb := a.progressCb
	a.mu.RUnlock()

	if cb != nil {
		cb(current, total, message)
	}
}

// AnalyzeFiles reads the resume and, when jobPath is set, the job description,
// then builds the report. A job file that yields no text still produces a
// match with a zero score.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, resumePath, jobPath string) (models.Report, error) {
	if err := ctx.Err(); err != nil {
		return models.Report{}, err
	}

	a.reportProgress(0, 100, "Reading resume...")
	resumeText, err := ingestion.ExtractText(resumePath)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to read resume: %w", err)
	}
	if resumeText == "" {
		log.WithField("file", resumePath).Warn("No text extracted from resume; image-only PDFs are not supported")
	}

	var jobText *string
	if jobPath != "" {
		if err := ctx.Err(); err != nil {
			return models.Report{}, err
		}

		a.reportProgress(30, 100, "Reading job description...")
		text, err := ingestion.ExtractText(jobPath)
		if err != nil {
			return models.Report{}, fmt.Errorf("failed to read job description: %w", err)
		}
		if text == "" {
			log.WithField("file", jobPath).Warn("No text extracted from job description")
		}
		jobText = &text
	}

	src := models.Source{File: resumePath, Format: ingestion.Format(resumePath)}
	return a.analyze(ctx, src, resumeText, jobText)
}

// AnalyzeText builds the report from already extracted text. An empty
// jobText means no job description was given.
func (a *Analyzer) AnalyzeText(ctx context.Context, src models.Source, resumeText, jobText string) (models.Report, error) {
	var job *string
	if jobText != "" {
		job = &jobText
	}
	return a.analyze(ctx, src, ingestion.NormalizeText(resumeText), job)
}

func (a *Analyzer) analyze(ctx context.Context, src models.Source, resumeText string, jobText *string) (models.Report, error) {
	if err := ctx.Err(); err != nil {
		return models.Report{}, err
	}

	a.reportProgress(50, 100, "Extracting profile...")
	report := models.Report{Profile: a.builder.Build(resumeText, src)}
	log.WithFields(log.Fields{
		"file":       report.Profile.Source.File,
		"chars":      report.Profile.Source.CharCount,
		"sections":   len(report.Profile.Sections),
		"skills":     len(report.Profile.Skills),
		"experience": len(report.Profile.Experience),
	}).Debug("Profile built")

	if jobText != nil {
		if err := ctx.Err(); err != nil {
			return models.Report{}, err
		}

		a.reportProgress(80, 100, "Scoring keyword match...")
		m := a.scorer.Score(resumeText, *jobText)
		report.Match = &m
		log.WithFields(log.Fields{
			"score":   m.ScorePercent,
			"matched": len(m.Matched),
			"job":     len(m.JobKeywords),
		}).Debug("Keyword match scored")
	}

	a.mu.Lock()
	a.report = &report
	a.mu.Unlock()

	a.reportProgress(100, 100, "Analysis complete!")

	return report, nil
}

// GetReport returns the most recent report (thread-safe)
func (a *Analyzer) GetReport() (models.Report, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.report == nil {
		return models.Report{}, ErrNoReport
	}
	return *a.report, nil
}
