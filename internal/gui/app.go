package gui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/fmuoria/resumeparser/internal/analyzer"
	"github.com/fmuoria/resumeparser/internal/config"
	"github.com/fmuoria/resumeparser/internal/export"
	"github.com/fmuoria/resumeparser/internal/ingestion"
	"github.com/fmuoria/resumeparser/internal/models"
)

// App represents the main GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	config     *config.Config
	configPath string
	analyzer   *analyzer.Analyzer
	ctx        context.Context
	cancelFunc context.CancelFunc

	// UI Components
	resumeEntry   *widget.Entry
	jobEntry      *widget.Entry
	jobText       *widget.Entry
	analyzeBtn    *widget.Button
	cancelBtn     *widget.Button
	progressBar   *widget.ProgressBar
	progressLabel *widget.Label
	summaryLabel  *widget.Label
	output        *widget.Entry
	saveBtn       *widget.Button
	exportBtn     *widget.Button

	report *models.Report
}

// NewApp creates a new GUI application. Settings are saved to configPath, or
// to the default config location when it is empty.
func NewApp(cfg *config.Config, configPath string) *App {
	a := app.New()
	w := a.NewWindow("Resume Parser")
	w.Resize(fyne.NewSize(1000, 750))

	guiApp := &App{
		fyneApp:    a,
		mainWindow: w,
		config:     cfg,
		configPath: configPath,
		analyzer:   analyzer.New(cfg.Vocabulary()),
	}

	guiApp.setupUI()

	return guiApp
}

// Run starts the GUI application
func (a *App) Run() {
	a.mainWindow.ShowAndRun()
}

// setupUI initializes all UI components
func (a *App) setupUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Analyze", a.createAnalyzeTab()),
		container.NewTabItem("Settings", a.createSettingsTab()),
	)

	a.mainWindow.SetContent(tabs)
}

// browseButton opens a file picker and writes the chosen path into entry
func (a *App) browseButton(entry *widget.Entry) *widget.Button {
	return widget.NewButton("Browse...", func() {
		dialog.ShowFileOpen(func(uc fyne.URIReadCloser, err error) {
			if err == nil && uc != nil {
				entry.SetText(uc.URI().Path())
				uc.Close()
			}
		}, a.mainWindow)
	})
}

// createAnalyzeTab creates the main processing tab
func (a *App) createAnalyzeTab() fyne.CanvasObject {
	a.resumeEntry = widget.NewEntry()
	a.resumeEntry.SetPlaceHolder("Path to a .pdf, .docx, .txt or .md resume")

	a.jobEntry = widget.NewEntry()
	a.jobEntry.SetPlaceHolder("Optional job description file")

	a.jobText = widget.NewMultiLineEntry()
	a.jobText.SetPlaceHolder("...or paste the job description here")
	a.jobText.SetMinRowsVisible(4)

	inputSection := widget.NewForm(
		widget.NewFormItem("Resume", container.NewBorder(nil, nil, nil, a.browseButton(a.resumeEntry), a.resumeEntry)),
		widget.NewFormItem("Job File", container.NewBorder(nil, nil, nil, a.browseButton(a.jobEntry), a.jobEntry)),
		widget.NewFormItem("Job Text", a.jobText),
	)

	a.progressBar = widget.NewProgressBar()
	a.progressLabel = widget.NewLabel("Ready")
	a.analyzeBtn = widget.NewButton("Analyze", a.handleAnalyze)
	a.cancelBtn = widget.NewButton("Cancel", a.handleCancel)
	a.cancelBtn.Disable()

	progressSection := container.NewVBox(
		a.progressLabel,
		a.progressBar,
		container.NewHBox(a.analyzeBtn, a.cancelBtn),
	)

	a.summaryLabel = widget.NewLabel("")
	a.summaryLabel.Wrapping = fyne.TextWrapWord

	a.output = widget.NewMultiLineEntry()
	a.output.TextStyle = fyne.TextStyle{Monospace: true}
	a.output.SetMinRowsVisible(18)

	a.saveBtn = widget.NewButton("Save JSON...", a.handleSaveJSON)
	a.saveBtn.Disable()
	a.exportBtn = widget.NewButton("Export to Excel...", a.handleExport)
	a.exportBtn.Disable()

	resultsSection := container.NewVBox(
		widget.NewLabel("Results"),
		a.summaryLabel,
		a.output,
		container.NewHBox(a.saveBtn, a.exportBtn),
	)

	return container.NewVScroll(
		container.NewVBox(
			inputSection,
			widget.NewSeparator(),
			progressSection,
			widget.NewSeparator(),
			resultsSection,
		),
	)
}

// createSettingsTab creates the settings tab
func (a *App) createSettingsTab() fyne.CanvasObject {
	uploadsEntry := widget.NewEntry()
	uploadsEntry.SetText(a.config.UploadsDir)

	listenEntry := widget.NewEntry()
	listenEntry.SetText(a.config.ListenAddr)

	logLevel := widget.NewSelect([]string{"debug", "info", "warn", "error"}, nil)
	logLevel.SetSelected(a.config.LogLevel)

	skillsEntry := widget.NewMultiLineEntry()
	skillsEntry.SetPlaceHolder("Comma separated; leave empty for the built-in list")
	skillsEntry.SetText(strings.Join(a.config.Skills, ", "))
	skillsEntry.SetMinRowsVisible(4)

	form := widget.NewForm(
		widget.NewFormItem("Web UI Address", listenEntry),
		widget.NewFormItem("Uploads Folder", uploadsEntry),
		widget.NewFormItem("Log Level", logLevel),
		widget.NewFormItem("Skills", skillsEntry),
	)

	saveBtn := widget.NewButton("Save Settings", func() {
		updated := *a.config
		updated.ListenAddr = listenEntry.Text
		updated.UploadsDir = uploadsEntry.Text
		updated.LogLevel = logLevel.Selected
		updated.Skills = splitList(skillsEntry.Text)

		if err := updated.Validate(); err != nil {
			dialog.ShowError(fmt.Errorf("validation failed: %w", err), a.mainWindow)
			return
		}
		if err := updated.SaveAt(a.configPath); err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}

		*a.config = updated
		if level, err := log.ParseLevel(updated.LogLevel); err == nil {
			log.SetLevel(level)
		}
		a.analyzer = analyzer.New(updated.Vocabulary())

		dialog.ShowInformation("Success", "Settings saved successfully", a.mainWindow)
	})

	return container.NewVBox(form, saveBtn)
}

// handleAnalyze runs the analysis in the background
func (a *App) handleAnalyze() {
	resumePath := strings.TrimSpace(a.resumeEntry.Text)
	if resumePath == "" {
		dialog.ShowError(fmt.Errorf("please choose a resume file"), a.mainWindow)
		return
	}
	jobPath := strings.TrimSpace(a.jobEntry.Text)
	jobText := a.jobText.Text

	a.analyzeBtn.Disable()
	a.cancelBtn.Enable()
	a.saveBtn.Disable()
	a.exportBtn.Disable()

	a.ctx, a.cancelFunc = context.WithCancel(context.Background())
	ctx := a.ctx

	an := a.analyzer
	an.SetProgressCallback(func(current, total int, message string) {
		fyne.Do(func() {
			a.progressBar.SetValue(float64(current) / float64(total))
			a.progressLabel.SetText(message)
		})
	})

	go func() {
		report, err := runAnalysis(ctx, an, resumePath, jobPath, jobText)
		if err != nil {
			log.WithError(err).Error("Analysis failed")
		}

		// All UI updates must be done on the main thread using fyne.Do
		fyne.Do(func() {
			a.analyzeBtn.Enable()
			a.cancelBtn.Disable()

			if err != nil {
				if errors.Is(err, context.Canceled) {
					a.progressLabel.SetText("Analysis canceled")
				} else {
					a.progressLabel.SetText("Error: " + err.Error())
					dialog.ShowError(err, a.mainWindow)
				}
				return
			}

			a.showReport(report)
		})
	}()
}

// runAnalysis reads the job from a file when one is given, else from the
// pasted text
func runAnalysis(ctx context.Context, an *analyzer.Analyzer, resumePath, jobPath, jobText string) (models.Report, error) {
	if jobPath != "" || strings.TrimSpace(jobText) == "" {
		return an.AnalyzeFiles(ctx, resumePath, jobPath)
	}

	text, err := ingestion.ExtractText(resumePath)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to read resume: %w", err)
	}
	src := models.Source{File: resumePath, Format: ingestion.Format(resumePath)}
	return an.AnalyzeText(ctx, src, text, jobText)
}

// showReport renders the finished report
func (a *App) showReport(report models.Report) {
	a.report = &report

	data, err := export.MarshalJSON(report)
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}
	a.output.SetText(string(data))

	name := "unknown"
	if report.Profile.Name != nil {
		name = *report.Profile.Name
	}
	summary := fmt.Sprintf("Name: %s | Skills: %d | Positions: %d | Education: %d",
		name, len(report.Profile.Skills), len(report.Profile.Experience), len(report.Profile.Education))
	if report.Match != nil {
		summary += fmt.Sprintf("\nKeyword match: %.2f%% (%d of %d). Missing: %s",
			report.Match.ScorePercent, len(report.Match.Matched), len(report.Match.JobKeywords),
			strings.Join(report.Match.Missing, ", "))
	}
	a.summaryLabel.SetText(summary)

	a.saveBtn.Enable()
	a.exportBtn.Enable()
	a.progressLabel.SetText("Complete! Parsed " + report.Profile.Source.File)

	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   "Analysis Complete",
		Content: "Parsed " + report.Profile.Source.File,
	})
}

// handleCancel handles cancellation of processing
func (a *App) handleCancel() {
	if a.cancelFunc != nil {
		a.cancelFunc()
		a.progressLabel.SetText("Canceling...")
	}
}

// handleSaveJSON writes resume_profile.json and job_match.json into a folder
func (a *App) handleSaveJSON() {
	if a.report == nil {
		dialog.ShowError(fmt.Errorf("no results to save"), a.mainWindow)
		return
	}

	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if dir == nil {
			return // User canceled
		}

		written, err := export.WriteReport(dir.Path(), *a.report, export.Options{})
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to save: %w", err), a.mainWindow)
			return
		}

		names := make([]string, len(written))
		for i, p := range written {
			names[i] = filepath.Base(p)
		}
		dialog.ShowInformation("Success", "Saved "+strings.Join(names, ", "), a.mainWindow)
	}, a.mainWindow)
}

// handleExport handles exporting results to Excel
func (a *App) handleExport() {
	if a.report == nil {
		dialog.ShowError(fmt.Errorf("no results to export"), a.mainWindow)
		return
	}

	saveDialog := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		if uc == nil {
			return // User canceled
		}
		defer uc.Close()

		outputPath := uc.URI().Path()

		if err := export.ExportToExcel(*a.report, outputPath); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export: %w", err), a.mainWindow)
			return
		}

		dialog.ShowInformation("Success", "Results exported successfully to "+filepath.Base(outputPath), a.mainWindow)
	}, a.mainWindow)
	saveDialog.SetFileName(export.ExcelFile)
	saveDialog.Show()
}

// splitList splits a comma or newline separated list and drops empty items
func splitList(text string) []string {
	var items []string
	for _, item := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' }) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
