package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/dataqc/dataqc/internal/config"
	"github.com/dataqc/dataqc/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Start an HTTP server exposing the analysis pipeline at
POST /api/analyze for frontends and other tools`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}

		srv := server.New(cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "",
		"Listen address (default from DATAQC_LISTEN_ADDR or :8080)")
}
