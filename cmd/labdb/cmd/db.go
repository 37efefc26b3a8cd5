package cmd

import (
	"github.com/apex/log"
	"github.com/materials-commons/labdb/pkg/labdb"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the catalog tables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Open migrates the tables.
		db := mustOpenDB()
		if err := labdb.Close(db); err != nil {
			log.Fatalf("Failed closing database: %s", err)
		}

		log.Infof("Catalog ready")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop and recreate every catalog table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDB()
		defer func() { _ = labdb.Close(db) }()

		if err := labdb.ClearDatabase(db); err != nil {
			log.Fatalf("Unable to clear database: %s", err)
		}

		log.Infof("Catalog cleared")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(clearCmd)
}
