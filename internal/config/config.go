package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DataDir     string
	RedisURL    string
	Environment string

	// Casdoor identity provider
	CasdoorEndpoint     string
	CasdoorClientID     string
	CasdoorClientSecret string
	CasdoorCertificate  string
	CasdoorOrganization string
	CasdoorApplication  string

	// AI result analysis
	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	// Exam defaults
	DefaultTimeLimitMinutes int
}

// AvailableGrades lists the grade levels the catalog serves. Each grade maps
// to its own catalog collection (lop6, lop7, ...).
var AvailableGrades = []string{"6", "7", "8", "9"}

func LoadConfig() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataDir:     getEnv("DATA_DIR", "data"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		Environment: getEnv("ENVIRONMENT", "development"),

		CasdoorEndpoint:     getEnv("CASDOOR_ENDPOINT", "http://localhost:8000"),
		CasdoorClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
		CasdoorClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
		CasdoorCertificate:  getEnv("CASDOOR_CERTIFICATE", ""),
		CasdoorOrganization: getEnv("CASDOOR_ORGANIZATION", "eduviet"),
		CasdoorApplication:  getEnv("CASDOOR_APPLICATION", "exam-service"),

		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AIModel:   getEnv("AI_MODEL", "gpt-4o-mini"),

		DefaultTimeLimitMinutes: getEnvInt("DEFAULT_TIME_LIMIT_MINUTES", 15),
	}, nil
}

// IsValidGrade reports whether grade names one of the served grade levels.
func IsValidGrade(grade string) bool {
	for _, g := range AvailableGrades {
		if g == grade {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
