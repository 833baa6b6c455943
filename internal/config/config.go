package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the process configuration. Values come from the environment,
// with a .env file loaded when present.
type Config struct {
	Env      string
	HTTPPort string

	// PostgresDSN selects postgres when set; otherwise the service falls
	// back to a local sqlite file.
	PostgresDSN string
	SqlitePath  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Compression selects the content encoding at rest.
	Compression string

	// SweepSchedule is the cron schedule of the version sweeper.
	SweepSchedule  string
	SweepRetention string
}

func LoadConfig() *Config {
	return &Config{
		Env:            getEnv("ENV", "dev"),
		HTTPPort:       getEnv("HTTP_PORT", "4030"),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		SqlitePath:     getEnv("SQLITE_PATH", ".db/article.db"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        0,
		Compression:    getEnv("COMPRESSION", "gzip"),
		SweepSchedule:  getEnv("SWEEP_SCHEDULE", "@every 1h"),
		SweepRetention: getEnv("SWEEP_RETENTION", "720h"),
	}
}

// GetDb opens the configured database connection.
func GetDb(cnf *Config) *gorm.DB {
	if cnf.PostgresDSN != "" {
		db, err := gorm.Open(postgres.Open(cnf.PostgresDSN), &gorm.Config{})
		if err != nil {
			logrus.Fatalf("error connecting to postgres: %v", err)
		}
		return db
	}

	if err := os.MkdirAll(".db", os.ModePerm); err != nil {
		logrus.Fatalf("error creating sqlite directory: %v", err)
	}
	db, err := gorm.Open(sqlite.Open(cnf.SqlitePath), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error opening sqlite database: %v", err)
	}
	return db
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
