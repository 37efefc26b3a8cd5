package cmd

import (
	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/materials-commons/labdb/pkg/config"
	"github.com/materials-commons/labdb/pkg/labdb"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		db := mustOpenDB()
		defer func() { _ = labdb.Close(db) }()

		setupRoutes(e, RouteOpts{db: db})

		if !cmd.Flags().Changed("port") {
			port = config.GetKeyWithDefault("LABDB_HTTP_PORT", port)
		}

		log.Infof("Listening on :%s", port)
		if err := e.Start(":" + port); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&port, "port", "8351", "port to listen on")
	rootCmd.AddCommand(serveCmd)
}
