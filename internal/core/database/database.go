// Package database opens the shared store. gorm serves the entity repositories
// and sqlx serves the identity store and health checks; both sit on one *sql.DB.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/finance-app/internal"
	budgetDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/budget"
	categoryDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/expense"
	userDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/user"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DB struct {
	Gorm   *gorm.DB
	SQL    *sqlx.DB
	Driver string
}

func Open(cfg internal.DatabaseConfig, lg *slog.Logger) (*DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(lg, cfg.LogQueries),
	}

	switch cfg.Driver {
	case internal.DriverPostgres:
		const driver = "pgx"
		sqlxDB, err := sqlx.Connect(driver, cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		configurePool(sqlxDB, cfg)

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlxDB.DB}), gormCfg)
		if err != nil {
			_ = sqlxDB.Close()
			return nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		return &DB{Gorm: gdb, SQL: sqlxDB, Driver: cfg.Driver}, nil

	case internal.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(cfg.Source), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlxDB := sqlx.NewDb(sqlDB, "sqlite3")
		configurePool(sqlxDB, cfg)
		// every in-memory connection is its own database
		if strings.Contains(cfg.Source, ":memory:") {
			sqlDB.SetMaxOpenConns(1)
		}
		return &DB{Gorm: gdb, SQL: sqlxDB, Driver: cfg.Driver}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// OpenInMemory is a migrated sqlite database for tests and local experiments.
func OpenInMemory(lg *slog.Logger) (*DB, error) {
	db, err := Open(internal.DatabaseConfig{
		Driver:       internal.DriverSQLite,
		Source:       ":memory:?_foreign_keys=1",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, lg)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db.Gorm); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func configurePool(db *sqlx.DB, cfg internal.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// AutoMigrate creates the schema from the row types. Postgres deployments use the goose migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userDatamodel.User{},
		&userDatamodel.UserRole{},
		&categoryDatamodel.Category{},
		&expenseDatamodel.Expense{},
		&budgetDatamodel.Budget{},
	)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SQL.Close()
}

// slogWriter routes gorm's printf-style logger into slog at debug level.
type slogWriter struct {
	lg *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.lg.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "gorm")
}

func newGormLogger(lg *slog.Logger, logQueries bool) gormlogger.Interface {
	if lg == nil {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	level := gormlogger.Warn
	if logQueries {
		level = gormlogger.Info
	}
	return gormlogger.New(slogWriter{lg: lg}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
