package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/averden/hospitality-booking/internal/model"
)

// Open connects to MySQL through gorm and verifies the connection.
func Open(user, pass, host, port, name string) (*gorm.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every model the service
// persists. Join tables are handled by gorm's many2many tags.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Group{},
		&model.User{},
		&model.RefreshToken{},
		&model.Location{},
		&model.Facility{},
		&model.Listing{},
		&model.Resource{},
		&model.Rule{},
		&model.MediaAsset{},
		&model.Booking{},
	)
}
