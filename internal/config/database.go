package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool sizing for a single API instance. Event reads dominate the
// workload and most of them are absorbed by the response cache, so the
// pool stays small.
const (
	dbMaxIdleConns    = 5
	dbMaxOpenConns    = 25
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// ConnectDatabase opens the MySQL connection, tunes the pool and
// verifies connectivity. The returned handle is injected into the
// repositories; nothing holds it as package state.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Error)
	if cfg.IsDev() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(dbMaxIdleConns)
	sqlDB.SetMaxOpenConns(dbMaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✅ Database connected [%s:%s/%s]",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	return db, nil
}

// DSN returns the MySQL connection string. parseTime is required so
// GORM scans DATETIME columns into time.Time.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

// CloseDatabase releases the connection pool behind db
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// PingDatabase reports whether db can still reach MySQL; the health
// endpoint calls it on every check
func PingDatabase(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
