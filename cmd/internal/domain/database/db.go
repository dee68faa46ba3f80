package database

import (
	"fmt"
	"path/filepath"
	"time"

	"bizdirectory/cmd/internal/domain/entity"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver     string
	DSN        string
	SQLitePath string
	LogQueries bool
}

// Init opens the configured database, migrates the schema and applies the
// indexes AutoMigrate cannot express.
func Init(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if !opts.LogQueries {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.Driver == DriverPostgres {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
	} else {
		// SQLite only tolerates a single writer
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        opts.DSN,
		}), nil
	case DriverSQLite, "":
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(".", "database.db")
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Business{},
		&entity.OwnershipClaim{},
		&entity.Review{},
		&entity.FeaturedRequest{},
		&entity.Lead{},
		&entity.AuditLog{},
		&entity.Connection{},
	)
	if err != nil {
		return err
	}

	// One active claim per user and business. Rejected claims stay as history.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_claims_user_business_active
		ON ownership_claims (user_id, business_id)
		WHERE status IN ('pending', 'approved')`).Error
}
