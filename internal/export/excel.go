// Package export writes analysis reports to JSON files and Excel workbooks.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fmuoria/resumeparser/internal/models"
)

// Sheet names in the exported workbook
const (
	ProfileSheet    = "Profile"
	ExperienceSheet = "Experience"
	EducationSheet  = "Education"
	MatchSheet      = "Keyword Match"
)

// ExportToExcel generates an Excel workbook for a report
func ExportToExcel(report models.Report, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	// Ensure output path has .xlsx extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}

	// Clean the path for cross-platform compatibility (Windows paths)
	outputPath = filepath.Clean(outputPath)

	f.SetSheetName("Sheet1", ProfileSheet)
	for _, name := range []string{ExperienceSheet, EducationSheet, MatchSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create %s sheet: %w", name, err)
		}
	}

	if err := createProfileSheet(f, ProfileSheet, report.Profile); err != nil {
		return fmt.Errorf("failed to create profile sheet: %w", err)
	}
	if err := createExperienceSheet(f, ExperienceSheet, report.Profile.Experience); err != nil {
		return fmt.Errorf("failed to create experience sheet: %w", err)
	}
	if err := createEducationSheet(f, EducationSheet, report.Profile.Education); err != nil {
		return fmt.Errorf("failed to create education sheet: %w", err)
	}
	if err := createMatchSheet(f, MatchSheet, report.Match); err != nil {
		return fmt.Errorf("failed to create keyword match sheet: %w", err)
	}

	// Try to save the file directly
	if err := f.SaveAs(outputPath); err != nil {
		// If direct save fails, try buffer write fallback
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}

		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}

	return nil
}

type sheetStyles struct {
	header int
	label  int
	wrap   int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		return s, err
	}

	s.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	return s, err
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// createProfileSheet writes one labelled row per profile field
func createProfileSheet(f *excelize.File, sheetName string, p models.Profile) error {
	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 80)

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	row := 1
	title := "Resume Profile"
	if p.Name != nil {
		title = "Resume Profile: " + *p.Name
	}
	f.SetCellValue(sheetName, cell("A", row), title)
	f.SetCellStyle(sheetName, cell("A", row), cell("B", row), styles.header)
	f.MergeCell(sheetName, cell("A", row), cell("B", row))
	row += 2

	fields := []struct {
		label string
		value string
	}{
		{"Name", optional(p.Name)},
		{"Emails", strings.Join(p.Contact.Emails, "\n")},
		{"Phones", strings.Join(p.Contact.Phones, "\n")},
		{"LinkedIn", optional(p.Contact.LinkedIn)},
		{"GitHub", optional(p.Contact.GitHub)},
		{"Portfolio", strings.Join(p.Contact.Portfolio, "\n")},
		{"Summary", optional(p.Summary)},
		{"Skills", strings.Join(p.Skills, ", ")},
		{"Certifications", strings.Join(p.Certifications, "\n")},
		{"Languages", strings.Join(p.Languages, ", ")},
		{"Source File", p.Source.File},
		{"Format", p.Source.Format},
	}

	for _, field := range fields {
		f.SetCellValue(sheetName, cell("A", row), field.label)
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), styles.label)
		f.SetCellValue(sheetName, cell("B", row), field.value)
		f.SetCellStyle(sheetName, cell("B", row), cell("B", row), styles.wrap)
		row++
	}

	f.SetCellValue(sheetName, cell("A", row), "Characters")
	f.SetCellStyle(sheetName, cell("A", row), cell("A", row), styles.label)
	f.SetCellValue(sheetName, cell("B", row), p.Source.CharCount)

	return nil
}

// createExperienceSheet writes one row per position
func createExperienceSheet(f *excelize.File, sheetName string, entries []models.ExperienceEntry) error {
	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 22)
	f.SetColWidth(sheetName, "D", "D", 70)
	f.SetColWidth(sheetName, "E", "E", 50)

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	headers := []string{"Role", "Company", "Dates", "Bullets", "Description"}
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, styles.header)
	}

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), e.Role)
		f.SetCellValue(sheetName, cell("B", row), e.Company)
		f.SetCellValue(sheetName, cell("C", row), e.Dates)
		f.SetCellValue(sheetName, cell("D", row), bulletList(e.Bullets))
		f.SetCellValue(sheetName, cell("E", row), strings.Join(e.Description, "\n"))
		f.SetCellStyle(sheetName, cell("A", row), cell("E", row), styles.wrap)
	}

	return nil
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

// createEducationSheet writes one row per degree block
func createEducationSheet(f *excelize.File, sheetName string, entries []models.EducationEntry) error {
	f.SetColWidth(sheetName, "A", "A", 45)
	f.SetColWidth(sheetName, "B", "B", 45)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 10)

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	headers := []string{"Degree", "Institution", "Year", "Grade"}
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, styles.header)
	}

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), e.Degree)
		f.SetCellValue(sheetName, cell("B", row), e.Institution)
		f.SetCellValue(sheetName, cell("C", row), e.Year)
		f.SetCellValue(sheetName, cell("D", row), e.Grade)
		f.SetCellStyle(sheetName, cell("A", row), cell("D", row), styles.wrap)
	}

	return nil
}

// scoreColor picks the same traffic-light fills used across the workbook
func scoreColor(percent float64) string {
	switch {
	case percent >= 75:
		return "C6EFCE"
	case percent >= 50:
		return "FFEB9C"
	case percent >= 25:
		return "FFC7CE"
	default:
		return "FF9999"
	}
}

// createMatchSheet writes the score and the matched and missing keywords
func createMatchSheet(f *excelize.File, sheetName string, m *models.Match) error {
	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "B", 25)
	f.SetColWidth(sheetName, "C", "C", 25)

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	if m == nil {
		f.SetCellValue(sheetName, "A1", "No job description was provided.")
		return nil
	}

	scoreStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{scoreColor(m.ScorePercent)}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	f.SetCellValue(sheetName, "A1", "Score")
	f.SetCellStyle(sheetName, "A1", "A1", styles.label)
	f.SetCellValue(sheetName, "B1", fmt.Sprintf("%.2f%%", m.ScorePercent))
	f.SetCellStyle(sheetName, "B1", "B1", scoreStyle)

	f.SetCellValue(sheetName, "A2", "Matched")
	f.SetCellStyle(sheetName, "A2", "A2", styles.label)
	f.SetCellValue(sheetName, "B2", fmt.Sprintf("%d of %d", len(m.Matched), len(m.JobKeywords)))

	columns := []struct {
		title string
		items []string
	}{
		{"Matched Keywords", m.Matched},
		{"Missing Keywords", m.Missing},
		{"Resume Keywords", m.ResumeKeywords},
	}
	for col, c := range columns {
		head, _ := excelize.CoordinatesToCellName(col+1, 4)
		f.SetCellValue(sheetName, head, c.title)
		f.SetCellStyle(sheetName, head, head, styles.header)
		for i, item := range c.items {
			ref, _ := excelize.CoordinatesToCellName(col+1, i+5)
			f.SetCellValue(sheetName, ref, item)
		}
	}

	return nil
}
