package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		svc, closeFn, err := newService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(svc, svc.Logger, version).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
