package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fmuoria/resumeparser/internal/cli"
	"github.com/fmuoria/resumeparser/internal/gui"
)

func main() {
	// Load RESUMEPARSER_* overrides from .env when present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	if err := cli.Execute(desktopCommand()); err != nil {
		os.Exit(1)
	}
}

func desktopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "desktop",
		Short: "Open the desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gui.NewApp(cli.ConfigFrom(cmd), cli.ConfigPathFrom(cmd)).Run()
			return nil
		},
	}
}
