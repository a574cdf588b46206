package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"apparelstock/internal/config"
	"apparelstock/internal/http/handlers"
	applog "apparelstock/internal/log"
	"apparelstock/internal/repos"
)

// apparelstock serve: same as running with no subcommand.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closeLog, err := fileLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := repos.OpenDB(ctx, cfg.StoreURL, cfg.StoreKey)
	if err != nil {
		applog.Error(nil, "store.unavailable", err, nil)
		return err
	}
	defer db.Close()

	app := handlers.NewApp(handlers.NewDeps(db, cfg), cfg.CORSOrigins)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- app.Listen(":" + cfg.Port) }()
	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	applog.Info(nil, "server.stop", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// fileLogging tees events into path when it is set. A file that cannot be
// opened is reported and skipped.
func fileLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrPermission) || errors.Is(err, os.ErrNotExist) {
			applog.Security(nil, "log.file.open.fail", map[string]any{"path": path, "err": err.Error()})
			return func() {}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	applog.SetOutput(io.MultiWriter(os.Stdout, f))
	return func() {
		applog.SetOutput(os.Stdout)
		_ = f.Close()
	}, nil
}
