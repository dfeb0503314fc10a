package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmuoria/resumeparser/internal/models"
)

// Output file names written into the output directory
const (
	ProfileFile = "resume_profile.json"
	MatchFile   = "job_match.json"
	ExcelFile   = "resume_report.xlsx"
)

// Options controls which extra artifacts WriteReport produces
type Options struct {
	// Excel also writes resume_report.xlsx
	Excel bool
}

// WriteReport writes the profile, and the match when present, into outdir.
// It returns the written paths in order. Identical reports produce
// byte-identical JSON files.
func WriteReport(outdir string, report models.Report, opts Options) ([]string, error) {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string

	profilePath := filepath.Join(outdir, ProfileFile)
	if err := WriteJSON(profilePath, report.Profile); err != nil {
		return written, err
	}
	written = append(written, profilePath)

	if report.Match != nil {
		matchPath := filepath.Join(outdir, MatchFile)
		if err := WriteJSON(matchPath, report.Match); err != nil {
			return written, err
		}
		written = append(written, matchPath)
	}

	if opts.Excel {
		excelPath := filepath.Join(outdir, ExcelFile)
		if err := ExportToExcel(report, excelPath); err != nil {
			return written, err
		}
		written = append(written, excelPath)
	}

	return written, nil
}

// MarshalJSON renders v as two-space indented JSON with a trailing newline
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON atomically replaces path with the JSON rendering of v
func WriteJSON(path string, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeAtomic writes to a temp file in the destination directory and renames
// it over dest so readers never see a partial file.
func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0644)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
