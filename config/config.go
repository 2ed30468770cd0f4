package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	OrderPageURL  string
	OrdersCSVURL  string
	OrdersCSVPath string

	ReceiptsDir    string
	ScreenshotsDir string
	ArchivePath    string
	ResultsCSVPath string

	SlowMoMs           int
	SubmitMaxAttempts  int
	SubmitRetryDelayMs int
	Headless           bool
	ChromeBin          string

	StoreResults     bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		OrderPageURL:  getEnv("ORDER_PAGE_URL", "https://robotsparebinindustries.com/#/robot-order"),
		OrdersCSVURL:  getEnv("ORDERS_CSV_URL", "https://robotsparebinindustries.com/orders.csv"),
		OrdersCSVPath: getEnv("ORDERS_CSV_PATH", "./orders.csv"),

		ReceiptsDir:    getEnv("RECEIPTS_DIR", "./output/receipts"),
		ScreenshotsDir: getEnv("SCREENSHOTS_DIR", "./output/screenshots"),
		ArchivePath:    getEnv("ARCHIVE_PATH", "./output/receipts.zip"),
		ResultsCSVPath: getEnv("RESULTS_CSV_PATH", "./output/results.csv"),

		SlowMoMs:           getEnvInt("SLOW_MO_MS", 200),
		SubmitMaxAttempts:  getEnvInt("SUBMIT_MAX_ATTEMPTS", 10),
		SubmitRetryDelayMs: getEnvInt("SUBMIT_RETRY_DELAY_MS", 500),
		Headless:           getEnvBool("HEADLESS", true),
		ChromeBin:          getEnv("CHROME_BIN", ""),

		StoreResults:     getEnvBool("STORE_RESULTS", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "orderbot"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "orderbot123"),
		PostgresDB:       getEnv("POSTGRES_DB", "orders_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string for the results store.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
