package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/materials-commons/labdb/pkg/clog"
	"github.com/materials-commons/labdb/pkg/config"
	"github.com/materials-commons/labdb/pkg/labdb"
	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfgFile  string
	dbFile   string
	driver   string
	inMemory bool
	echoSQL  bool
	logLevel string

	dbOptions labdb.Options
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labdb",
	Short: "Manage the lab experiment catalog",
	Long: `labdb keeps the catalog of gateware, device databases, projects, pipelines,
sequences and measurements, and exports or reports on it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Select(cfgFile)
		if err != nil {
			return err
		}

		level := logLevel
		if !cmd.Flags().Changed("log-level") {
			level = c.GetKeyWithDefault("LABDB_LOG_LEVEL", clog.DefaultLevel)
		}

		if err := clog.Setup(os.Stderr, level); err != nil {
			return err
		}

		dbOptions = optionsFromFlags(cmd, labdb.OptionsFromConfig(c))
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&dbFile, "db", labdb.DefaultDBFile, "sqlite database file")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", labdb.DriverSqlite, "database driver, sqlite or mysql")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "memory", false, "use an in-memory sqlite database")
	rootCmd.PersistentFlags().BoolVar(&echoSQL, "echo", false, "log every SQL statement")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", clog.DefaultLevel, "debug, info, warn or error")
}

// optionsFromFlags overrides opts with the flags given on the command line.
func optionsFromFlags(cmd *cobra.Command, opts labdb.Options) labdb.Options {
	flags := cmd.Flags()
	if flags.Changed("db") {
		opts.Name = dbFile
	}

	if flags.Changed("driver") {
		opts.Driver = driver
	}

	if flags.Changed("memory") {
		opts.Memory = inMemory
	}

	if flags.Changed("echo") {
		opts.Echo = echoSQL
	}

	return opts
}

func mustOpenDB() *gorm.DB {
	return labdb.MustOpen(dbOptions)
}

// runInStor opens the database and runs fn in a single transaction.
func runInStor(fn func(s stor.ObjectStor) error) error {
	db := mustOpenDB()
	defer func() {
		if err := labdb.Close(db); err != nil {
			log.Errorf("Failed closing database: %s", err)
		}
	}()

	return stor.WithObjectStor(db, fn)
}

func printJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Unable to encode output: %s", err)
	}

	fmt.Println(string(b))
}
