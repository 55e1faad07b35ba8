package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jacentio/companies/company"
	"github.com/jacentio/companies/internal/api"
	"github.com/jacentio/companies/internal/config"
	"github.com/jacentio/companies/internal/logger"
	"github.com/jacentio/companies/store"
)

const (
	addrFlag = "addr"

	shutdownTimeout = 10 * time.Second
)

var serveFlags = map[string]cobraflags.Flag{
	addrFlag: &cobraflags.StringFlag{
		Name:  addrFlag,
		Value: "",
		Usage: "Listen address (host:port). Overrides HTTP_HOST and HTTP_PORT",
	},
}

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  serveCommand,
	}

	cobraflags.RegisterMap(serveCmd, serveFlags)
	return serveCmd
}

// listenAddr returns the --addr value parsed for cmd, or fallback when unset.
// The flag is read from cmd itself since root and serve each register it.
func listenAddr(cmd *cobra.Command, fallback string) string {
	if v, err := cmd.Flags().GetString(addrFlag); err == nil && v != "" {
		return v
	}
	return fallback
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := cfg.AWS.DynamoDB(ctx)
	if err != nil {
		return err
	}
	st := store.New(client, cfg.Table.Store())
	svc := company.NewService(st,
		company.WithScanLimit(int32(cfg.Table.ScanLimit)),
		company.WithLogger(log.With().Str("component", "company").Logger()),
	)

	app := api.New(api.Options{
		Service:     svc,
		Logger:      log.With().Str("component", "http").Logger(),
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	addr := listenAddr(cmd, cfg.HTTP.Addr())

	errc := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("table", st.Config().TableName).
			Str("region", cfg.AWS.Region).
			Str("env", cfg.App.Env).
			Msg("starting server")
		errc <- app.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
