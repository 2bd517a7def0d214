/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillmatch-io/apiserver/config"
	"github.com/skillmatch-io/apiserver/internal/server"
	"github.com/skillmatch-io/apiserver/pkg/logger"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the skillmatch backend server",
	Long: `Starts the skillmatch backend server. Usage:

	skillmatch server
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		log := logger.New(cfg.Env, cfg.LogLevel)

		srv, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("server error")
			}
		case sig := <-stop:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("shutdown failed")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
