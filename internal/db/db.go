package db

import (
	"log"
	"os"
	"time"

	"kindling/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres, tunes the pool and runs migrations. The DSN
// comes from DATABASE_URL when dsn is empty.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=kindling port=5432 sslmode=disable TimeZone=UTC"
	}

	g, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	log.Println("Database connection established")

	sqlDB, err := g.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Migrate creates or updates the schema. Exposed separately so tests can run
// it against their own database handle.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Comment{},
		&models.Vote{},
		&models.Favorite{},
		&models.Hidden{},
		&models.ModerationLog{},
	)
}
