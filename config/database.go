package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER (mysql by default;
// postgres and sqlite are supported for deployments and local runs).
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "postgres":
		if dsn == "" {
			dsn = "host=127.0.0.1 user=postgres dbname=restaurant_booking port=5432 sslmode=disable"
		}
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		if dsn == "" {
			dsn = "restaurant_booking.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "root:@tcp(127.0.0.1:3306)/restaurant_booking?charset=utf8mb4&parseTime=True&loc=Local"
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}
}
