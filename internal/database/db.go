package database

import (
	"context"
	"fmt"
	"time"

	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectTimeout = 30 * time.Second

// Connect opens the configured database, migrates the schema and loads the
// reference data.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.DBDebug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLife)

	if cfg.DBDriver != "sqlite" {
		if err := waitForDB(db); err != nil {
			return nil, err
		}
	}
	logrus.WithField("driver", cfg.DBDriver).Info("database connection established")

	logrus.Info("running migrations")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	data, err := LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	if err := Seed(db, data); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// waitForDB pings with exponential backoff until the server answers.
func waitForDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	deadline := time.Now().Add(connectTimeout)
	wait := 500 * time.Millisecond
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if time.Now().Add(wait).After(deadline) {
			return fmt.Errorf("database not reachable after %s: %w", connectTimeout, err)
		}
		logrus.WithError(err).Warnf("database not ready, retrying in %s", wait)
		time.Sleep(wait)
		wait *= 2
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Country{},
		&models.City{},
		&models.Address{},
		&models.BusinessArea{},
		&models.Tag{},
		&models.Level{},
		&models.EmploymentFormat{},
		&models.WorkFormat{},
		&models.ResponseStatus{},
		&models.Permission{},
		&models.Role{},
		&models.User{},
		&models.EmailConfirmationCode{},
		&models.Profile{},
		&models.Company{},
		&models.CompanyProfile{},
		&models.Vacancy{},
		&models.Response{},
		&models.Review{},
	)
}
