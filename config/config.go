package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	LogMode string
	JWTKey  string

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	QuizMaxAttempts int
	QuizPassPercent int // 0 accepts every submission as a pass

	EnrollmentSweepCron string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		LogMode: getEnv("LOG_MODE", "development"),
		JWTKey:  getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tracker"),
		DBPort:     getEnv("DB_PORT", "5432"),

		QuizMaxAttempts: getEnvInt("QUIZ_MAX_ATTEMPTS", 3),
		QuizPassPercent: getEnvInt("QUIZ_PASS_PERCENT", 0),

		EnrollmentSweepCron: getEnv("ENROLLMENT_SWEEP_CRON", "5 0 * * *"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.QuizMaxAttempts < 1 {
		log.Printf("Warning: QUIZ_MAX_ATTEMPTS=%d is invalid, falling back to 3.", AppConfig.QuizMaxAttempts)
		AppConfig.QuizMaxAttempts = 3
	}
	if AppConfig.QuizPassPercent < 0 || AppConfig.QuizPassPercent > 100 {
		log.Printf("Warning: QUIZ_PASS_PERCENT=%d is out of range, falling back to 0.", AppConfig.QuizPassPercent)
		AppConfig.QuizPassPercent = 0
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
