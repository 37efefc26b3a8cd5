package labdb

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/materials-commons/labdb/pkg/config"
	"github.com/materials-commons/labdb/pkg/labdb/labmodel"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSqlite = "sqlite"
	DriverMysql  = "mysql"

	SqliteInMemoryDSN = ":memory:"
	DefaultDBFile     = "labdb.db"
)

// Options are the knobs for opening the catalog database.
type Options struct {
	// Driver is DriverSqlite or DriverMysql. Blank means DriverSqlite.
	Driver string

	// Name is the sqlite database file. A leading ~ is expanded. Ignored
	// when Memory is set or the driver is mysql.
	Name string

	// Memory opens a private in-memory sqlite database.
	Memory bool

	// Echo logs every generated SQL statement.
	Echo bool

	// DSN is the mysql data source name.
	DSN string
}

// OptionsFromConfig reads the database options from c. The mysql DSN is built
// from the DB_* keys.
func OptionsFromConfig(c config.Configer) Options {
	return Options{
		Driver: c.GetKeyWithDefault("LABDB_DB_DRIVER", DriverSqlite),
		Name:   c.GetKeyWithDefault("LABDB_DB_FILE", DefaultDBFile),
		Memory: c.GetBoolKeyWithDefault("LABDB_IN_MEMORY", false),
		Echo:   c.GetBoolKeyWithDefault("LABDB_ECHO", false),
		DSN:    MakeMysqlDSN(c),
	}
}

func MakeMysqlDSN(c config.Configer) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.GetKey("DB_USERNAME"),
		c.GetKey("DB_PASSWORD"),
		c.GetKeyWithDefault("DB_HOST", "127.0.0.1"),
		c.GetKeyWithDefault("DB_PORT", "3306"),
		c.GetKey("DB_DATABASE"))
}

// SqliteDSN returns the sqlite file name to open for the options.
func (o Options) SqliteDSN() (string, error) {
	if o.Memory {
		return SqliteInMemoryDSN, nil
	}

	name := o.Name
	if name == "" {
		name = DefaultDBFile
	}

	return homedir.Expand(name)
}

func (o Options) gormConfig() *gorm.Config {
	logLevel := logger.Silent
	if o.Echo {
		logLevel = logger.Info
	}

	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}
}

const maxDBRetries = 5

var retryDelay = 3 * time.Second

// Open connects to the database described by opts and creates any missing
// tables. sqlite databases are limited to a single open connection, which
// also keeps a private in-memory database alive for the life of the pool.
func Open(opts Options) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch opts.Driver {
	case "", DriverSqlite:
		db, err = openSqlite(opts)
	case DriverMysql:
		db, err = openMysql(opts)
	default:
		return nil, errors.Errorf("unknown database driver %q", opts.Driver)
	}

	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		return nil, errors.Wrap(err, "migrating database")
	}

	return db, nil
}

// MustOpen is Open that calls log.Fatalf on failure.
func MustOpen(opts Options) *gorm.DB {
	db, err := Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}

	return db
}

func openSqlite(opts Options) (*gorm.DB, error) {
	dsn, err := opts.SqliteDSN()
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %q", opts.Name)
	}

	db, err := gorm.Open(sqlite.Open(dsn), opts.gormConfig())
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite database %q", dsn)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// openMysql will attempt to connect maxDBRetries times, sleeping retryDelay
// between attempts.
func openMysql(opts Options) (*gorm.DB, error) {
	var (
		err error
		db  *gorm.DB
	)

	retryCount := 1
	for {
		db, err = gorm.Open(mysql.Open(opts.DSN), opts.gormConfig())
		switch {
		case err == nil:
			return db, nil
		case retryCount >= maxDBRetries:
			return nil, errors.Wrapf(err, "opening mysql database after %d attempts", retryCount)
		default:
			log.Warnf("Failed to open mysql database (attempt %d): %s", retryCount, err)
			retryCount++
			time.Sleep(retryDelay)
		}
	}
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func models() []interface{} {
	var m []interface{}
	for _, kind := range labmodel.AllKinds() {
		m = append(m, kind.New())
	}

	return m
}

// RunMigrations creates the six kind tables when they do not exist.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}

// ClearDatabase removes every row of every kind by dropping and recreating
// the tables.
func ClearDatabase(db *gorm.DB) error {
	if err := db.Migrator().DropTable(models()...); err != nil {
		return errors.Wrap(err, "dropping tables")
	}

	return RunMigrations(db)
}
