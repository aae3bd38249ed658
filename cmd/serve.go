package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pitlane-analytics/pitwall/app"
	"github.com/pitlane-analytics/pitwall/infra/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer situation requests over MQTT",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("serve").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
