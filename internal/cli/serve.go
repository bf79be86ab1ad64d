package cli

import (
	"log"

	"github.com/biologicmachine-lab/GameOn/internal/config"
	"github.com/biologicmachine-lab/GameOn/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}

			app := server.New(cfg)
			log.Printf("listening on %s", cfg.Addr)
			return app.Listen(cfg.Addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config file")
	return cmd
}
