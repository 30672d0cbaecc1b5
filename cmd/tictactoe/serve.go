package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/app"
	"github.com/jaminalder/timetravel-tic-tac-toe/internal/web"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game in the browser",
	Long: `Start an HTTP server. Each "New game" click starts a fresh session held
in memory; idle sessions are dropped after the configured session TTL.

Examples:
  tictactoe serve
  tictactoe serve --addr 127.0.0.1:9000
  TTT_HIGHLIGHT_WINNER=false tictactoe serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides http-addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if flagAddr != "" {
		conf.HTTPAddr = flagAddr
	}
	logger, err := initLogger(conf)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := app.NewService(logger, app.Config{
		Highlight: conf.HighlightWinner,
		TTL:       conf.SessionTTL,
	})
	if conf.SessionTTL > 0 {
		go svc.RunJanitor(ctx, conf.SessionTTL/2)
	}

	srv := &http.Server{
		Addr:              conf.HTTPAddr,
		Handler:           web.NewServer(svc, web.Options{Logger: logger, Heartbeat: conf.Heartbeat}),
		ReadHeaderTimeout: 5 * time.Second,
		// SSE streams end with the request context, so tie it to ours.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", conf.HTTPAddr, "highlight", conf.HighlightWinner)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
