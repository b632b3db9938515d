package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, cfg, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Engine().Reload(ctx); err != nil {
			return err
		}
		return a.Serve(ctx, ":"+cfg.Port)
	},
}

func init() {
	ServeCmd.Flags().String("port", "", "port to listen on (overrides PORT)")
	BindFlag("port", ServeCmd.Flags().Lookup("port"))
}
