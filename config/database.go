package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mdarmaan6204/nutri-tracker/models"
)

const (
	connectAttempts = 5
	connectDelay    = 3 * time.Second
)

// OpenDatabase connects to postgres, retrying a fixed number of times
// with a fixed delay before giving up, then runs migrations. Connection
// drops after startup are left to the driver's pool.
func OpenDatabase(cfg Config, logger *logrus.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			break
		}
		logger.Warnf("database connect attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Meal{}); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
