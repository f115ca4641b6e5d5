package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/waithaka/dukasoko/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "dukasoko-api")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 0)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 0)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 0)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 0)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 0)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// API key config
	configs.APIKey.AdminKey = GetEnv("ADMIN_API_KEY", "")
	configs.APIKey.OpsKey = GetEnv("OPS_API_KEY", "")

	// M-Pesa gateway config
	configs.Mpesa.ConsumerKey = GetEnv("MPESA_CONSUMER_KEY", "")
	configs.Mpesa.ConsumerSecret = GetEnv("MPESA_CONSUMER_SECRET", "")
	configs.Mpesa.BusinessShortCode = GetEnv("MPESA_BUSINESS_SHORT_CODE", "174379")
	configs.Mpesa.Passkey = GetEnv("MPESA_PASSKEY", "")
	configs.Mpesa.CallbackURL = GetEnv("MPESA_CALLBACK_URL", "")
	configs.Mpesa.IsLive = GetEnvAsBool("MPESA_IS_LIVE", false)
	configs.Mpesa.MinAmount = GetEnvAsFloat("MPESA_MIN_AMOUNT", 10.00)
	configs.Mpesa.MaxAmount = GetEnvAsFloat("MPESA_MAX_AMOUNT", 150000.00)
	configs.Mpesa.TimeoutSeconds = GetEnvAsInt("MPESA_TIMEOUT_SECONDS", 30)
	configs.Mpesa.SweepEnabled = GetEnvAsBool("MPESA_SWEEP_ENABLED", true)
	configs.Mpesa.SweepIntervalSecs = GetEnvAsInt("MPESA_SWEEP_INTERVAL_SECONDS", 120)
	configs.Mpesa.SweepAfterSecs = GetEnvAsInt("MPESA_SWEEP_AFTER_SECONDS", 300)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "dukasoko-api")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "logs/dukasoko.log")

	return configs
}

// ValidateMpesaConfig enforces the "exactly one active gateway
// configuration" rule at process start. An incomplete credential set
// would otherwise only surface on the first payment attempt.
func ValidateMpesaConfig(cfg *models.MpesaConfig) error {
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return fmt.Errorf("mpesa config: consumer key and secret are required")
	}
	if cfg.BusinessShortCode == "" || cfg.Passkey == "" {
		return fmt.Errorf("mpesa config: business short code and passkey are required")
	}
	if cfg.CallbackURL == "" {
		return fmt.Errorf("mpesa config: callback URL is required")
	}
	if cfg.MinAmount <= 0 || cfg.MaxAmount < cfg.MinAmount {
		return fmt.Errorf("mpesa config: invalid amount bounds [%v, %v]", cfg.MinAmount, cfg.MaxAmount)
	}
	return nil
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
