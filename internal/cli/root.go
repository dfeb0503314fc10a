// Package cli wires the parser, the exporters and the web UI into cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fmuoria/resumeparser/internal/analyzer"
	"github.com/fmuoria/resumeparser/internal/config"
	"github.com/fmuoria/resumeparser/internal/export"
)

type (
	configKey     struct{}
	configPathKey struct{}
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

type parseFlags struct {
	resume string
	job    string
	outdir string
	xlsx   bool
}

// NewRootCommand builds the resumeparser command tree. Extra subcommands are
// attached as-is and can read the loaded config with ConfigFrom and
// ConfigPathFrom.
func NewRootCommand(extra ...*cobra.Command) *cobra.Command {
	var global globalFlags
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "resumeparser",
		Short: "Parse resumes into structured JSON and score them against a job description",
		Long: `Parse a PDF, DOCX, TXT or MD resume into a structured profile and, when a
job description is given, score how many of its keywords the resume covers.

Example:
  resumeparser --resume cv.pdf --outdir out
  resumeparser --resume cv.docx --job jd.txt --outdir out --xlsx
  resumeparser serve --addr 127.0.0.1:8501`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			setupLogging(cfg, cmd.ErrOrStderr())
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			cmd.SetContext(context.WithValue(ctx, configPathKey{}, global.configPath))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, flags)
		},
	}
	cmd.SetContext(context.Background())

	cmd.PersistentFlags().StringVar(&global.configPath, "config", "", "Config file (.json, .yaml or .yml); defaults to the user config dir")
	cmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&global.logFormat, "log-format", "", "Log format: text or json")

	cmd.Flags().StringVar(&flags.resume, "resume", "", "Resume file (.pdf, .docx, .txt or .md)")
	cmd.Flags().StringVar(&flags.job, "job", "", "Optional job description file")
	cmd.Flags().StringVar(&flags.outdir, "outdir", "", "Directory for resume_profile.json and job_match.json")
	cmd.Flags().BoolVar(&flags.xlsx, "xlsx", false, "Also write "+export.ExcelFile)
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("outdir")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(extra...)

	return cmd
}

// Execute runs the root command and prints any failure as "error: <message>"
func Execute(extra ...*cobra.Command) error {
	cmd := NewRootCommand(extra...)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		return err
	}
	return nil
}

// ConfigFrom returns the config loaded for this invocation
func ConfigFrom(cmd *cobra.Command) *config.Config {
	if cmd.Context() != nil {
		if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.DefaultConfig()
}

// ConfigPathFrom returns the --config path for this invocation, or "" when
// the default config location is in use
func ConfigPathFrom(cmd *cobra.Command) string {
	if cmd.Context() != nil {
		if path, ok := cmd.Context().Value(configPathKey{}).(string); ok {
			return path
		}
	}
	return ""
}

func loadConfig(cmd *cobra.Command, global globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if global.configPath != "" {
		cfg, err = config.LoadFrom(global.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = global.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = global.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config, out io.Writer) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(out)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func runParse(cmd *cobra.Command, flags parseFlags) error {
	cfg := ConfigFrom(cmd)
	a := analyzer.New(cfg.Vocabulary())

	report, err := a.AnalyzeFiles(cmd.Context(), flags.resume, flags.job)
	if err != nil {
		return err
	}

	written, err := export.WriteReport(flags.outdir, report, export.Options{Excel: flags.xlsx})
	if err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", path)
	}
	return nil
}
