package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/materials-commons/labdb/pkg/labdb/export"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/spf13/cobra"
)

var (
	exportDir  string
	exportFile string
	detailed   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole catalog as nested JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			path string
			err  error
		)
		err = runInStor(func(s stor.ObjectStor) error {
			path, err = export.WriteTree(s, exportDir, exportFile)
			return err
		})
		if err != nil {
			log.Fatalf("Export failed: %s", err)
		}

		log.Infof("Wrote %s", path)
	},
}

var exportOneCmd = &cobra.Command{
	Use:   "export-one <kind> <id>",
	Short: "Write one row as JSON",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, id := mustParseKindAndID(args)

		var (
			path string
			err  error
		)
		err = runInStor(func(s stor.ObjectStor) error {
			path, err = export.WriteOne(s, kind, id, exportDir, exportFile)
			return err
		})
		if err != nil {
			log.Fatalf("Unable to export %s %d: %s", kind, id, err)
		}

		log.Infof("Wrote %s", path)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print sequence counts per project, or measurement counts per sequence with --detailed",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runInStor(func(s stor.ObjectStor) error {
			return export.PrintReport(s, os.Stdout, detailed)
		})
		if err != nil {
			log.Fatalf("Report failed: %s", err)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, exportOneCmd} {
		c.Flags().StringVar(&exportDir, "out", ".", "directory to write to")
		c.Flags().StringVar(&exportFile, "file", "", "file name to write")
	}

	reportCmd.Flags().BoolVar(&detailed, "detailed", false, "list every sequence of each project")

	rootCmd.AddCommand(exportCmd, exportOneCmd, reportCmd)
}
