package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/restudy-app/restudy-back/internal/config"
)

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Info,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate is separate from the client constructor so tests can run it
// against an sqlite instance.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return errors.Wrap(err, "migrate user")
	}
	if err := db.AutoMigrate(&Tag{}); err != nil {
		return errors.Wrap(err, "migrate tag")
	}
	if err := db.AutoMigrate(&Study{}); err != nil {
		return errors.Wrap(err, "migrate study")
	}
	if err := db.AutoMigrate(&Question{}); err != nil {
		return errors.Wrap(err, "migrate question")
	}
	if err := db.AutoMigrate(&Comment{}); err != nil {
		return errors.Wrap(err, "migrate comment")
	}
	if err := db.AutoMigrate(&Image{}); err != nil {
		return errors.Wrap(err, "migrate image")
	}
	return nil
}
