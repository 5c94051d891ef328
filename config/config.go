package config

import (
	"os"

	"food-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret returns the token signing key. It reads the environment at
// call time, not at package init: a secret supplied through .env only
// exists after godotenv.Load runs in main, which happens long after this
// package is initialized.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "food_marketplace_dev_secret"))
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database and migrates all models. The DSN is taken from
// DATABASE_PATH so tests can point it at an in-memory database.
func InitDB() {
	dsn := GetEnv("DATABASE_PATH", "food_marketplace.db")
	db, err := OpenDB(dsn)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db
	zap.L().Info("database connected and migrated", zap.String("path", dsn))
}

// OpenDB opens a SQLite database at the given DSN and runs migrations.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Courier{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
