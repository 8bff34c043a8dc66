package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/app"
	"github.com/abhisek/mathtutor/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP tutoring server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, config.FromEnv())
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
