package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fmuoria/resumeparser/internal/analyzer"
	"github.com/fmuoria/resumeparser/internal/api"
	"github.com/fmuoria/resumeparser/internal/config"
	"github.com/fmuoria/resumeparser/internal/ingestion"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd)
			if addr != "" {
				cfg.ListenAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (host:port); overrides listen_addr")

	return cmd
}

// newHTTPServer builds the web UI server and removes staged uploads left over
// from a previous run
func newHTTPServer(cfg *config.Config) (*http.Server, error) {
	files := ingestion.NewFileHandler(cfg.UploadsDir)
	if err := files.ClearUploads(); err != nil {
		return nil, err
	}

	server := api.NewServer(analyzer.New(cfg.Vocabulary()), files, cfg.MaxUploadBytes())

	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	srv, err := newHTTPServer(cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", "http://"+srv.Addr).Info("Starting Resume Parser web UI")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
