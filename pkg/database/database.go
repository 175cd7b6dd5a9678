package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"menu-service/internal/model"
	"menu-service/pkg/config"
)

var db *gorm.DB

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(appConfig *config.Config) error {
	logLevel := gormlogger.Error
	if appConfig.Server.Env == "development" {
		logLevel = gormlogger.Info
	}

	pgConfig := postgres.Config{
		DSN:                  appConfig.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	var err error
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxIdleConns(appConfig.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(appConfig.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(appConfig.DB.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return err
	}

	return nil
}

// Migrate runs the schema migrations for all catalog models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Tenant{},
		&model.Category{},
		&model.Subcategory{},
		&model.Item{},
	); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
