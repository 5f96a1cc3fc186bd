package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/urlmark/urlmark/internal/server"
	"github.com/urlmark/urlmark/pkg/reader"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the URL-to-Markdown HTTP service",
	Long: `Serve the conversion API over HTTP.

Endpoints:
  GET /url/reader/{target_url}   convert a URL (raw or percent-encoded)
  GET /healthz                   liveness probe
  GET /version                   build information`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Duration("request-timeout", server.DefaultConfig().RequestTimeout, "per-request conversion timeout")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("request-timeout", serveCmd.Flags().Lookup("request-timeout"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.DefaultConfig()
	cfg.Addr = viper.GetString("addr")
	if d := viper.GetDuration("request-timeout"); d > 0 {
		cfg.RequestTimeout = d
	}

	srv, err := server.New(cfg, reader.New(readerConfig()))
	if err != nil {
		logError("invalid server configuration: %v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logError("server: %v", err)
		return err
	}
	return nil
}
