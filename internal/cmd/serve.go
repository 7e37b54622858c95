package cmd

import (
	"context"
	"time"

	"github.com/diasna/tng/internal/app"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Start the HTTP server",
		Aliases: []string{"server", "run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			application := app.New(app.Options{ConfigPath: path})
			wait := application.Start()
			<-wait

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			application.Stop(ctx)
			return nil
		},
	}
}
