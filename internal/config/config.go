package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For request timeout

	"github.com/joho/godotenv" // For loading .env files
)

// Default workflow settings when the environment leaves them unset.
const (
	defaultMinFunding     = 100                     // Minimum accepted funding amount
	defaultRequestTimeout = 5000 * time.Millisecond // Per-request store deadline
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	JWTSecret      string        // JWT secret key
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	MinFunding     float64       // Minimum accepted funding amount
	LegacyPricing  bool          // Permissive base-tier pricing for unknown durations
	RequestTimeout time.Duration // Per-request deadline for workflow calls
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	minFunding := float64(defaultMinFunding)
	if v, err := strconv.ParseFloat(os.Getenv("MIN_FUNDING"), 64); err == nil && v > 0 {
		minFunding = v // Override minimum funding amount
	}
	requestTimeout := defaultRequestTimeout
	if ms, err := strconv.Atoi(os.Getenv("REQUEST_TIMEOUT_MS")); err == nil && ms > 0 {
		requestTimeout = time.Duration(ms) * time.Millisecond // Override request deadline
	}
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),                 // Application port
		DBUser:         os.Getenv("DB_USER"),                  // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),              // Database password
		DBHost:         os.Getenv("DB_HOST"),                  // Database host
		DBPort:         os.Getenv("DB_PORT"),                  // Database port
		DBName:         os.Getenv("DB_NAME"),                  // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),               // JWT secret key
		RedisAddr:      os.Getenv("REDIS_ADDR"),               // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),               // Redis password
		RedisDB:        redisDB,                               // Redis database number
		MinFunding:     minFunding,                            // Minimum funding amount
		LegacyPricing:  os.Getenv("LEGACY_PRICING") == "true", // Legacy pricing fallback
		RequestTimeout: requestTimeout,                        // Per-request deadline
		IsProd:         os.Getenv("IS_PROD") == "true",        // Is production environment
	}
}
