package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// CronSharedSecret authenticates the scheduler platform on the trigger endpoints.
	CronSharedSecret string

	// RunTimeout bounds one pipeline run triggered over HTTP.
	RunTimeout time.Duration

	// Clearing service (NetCash) connection settings.
	NetcashBaseURL       string
	NetcashServiceKey    string
	NetcashAccountNumber string
	NetcashTimeout       time.Duration

	// RateLimit is the limiter formatted period, e.g. "60-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CRON_SHARED_SECRET", "")
	viper.SetDefault("RUN_TIMEOUT", "60s")
	viper.SetDefault("NETCASH_BASE_URL", "")
	viper.SetDefault("NETCASH_SERVICE_KEY", "")
	viper.SetDefault("NETCASH_ACCOUNT_NUMBER", "")
	viper.SetDefault("NETCASH_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.CronSharedSecret = viper.GetString("CRON_SHARED_SECRET")
	if cfg.CronSharedSecret == "" {
		log.Println("Warning: CRON_SHARED_SECRET not set. Cron trigger endpoints will reject all requests.")
	}

	runTimeoutStr := viper.GetString("RUN_TIMEOUT")
	runTimeout, err := time.ParseDuration(runTimeoutStr)
	if err != nil {
		runTimeout = 60 * time.Second
		log.Printf("Warning: Invalid value for RUN_TIMEOUT ('%s'). Defaulting to %s.\n", runTimeoutStr, runTimeout)
	}
	cfg.RunTimeout = runTimeout

	cfg.NetcashBaseURL = viper.GetString("NETCASH_BASE_URL")
	cfg.NetcashServiceKey = viper.GetString("NETCASH_SERVICE_KEY")
	cfg.NetcashAccountNumber = viper.GetString("NETCASH_ACCOUNT_NUMBER")
	if cfg.NetcashServiceKey == "" || cfg.NetcashAccountNumber == "" {
		log.Println("Warning: NETCASH_SERVICE_KEY or NETCASH_ACCOUNT_NUMBER not set. Debit order runs will fail until configured.")
	}

	netcashTimeoutStr := viper.GetString("NETCASH_TIMEOUT")
	netcashTimeout, err := time.ParseDuration(netcashTimeoutStr)
	if err != nil {
		netcashTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for NETCASH_TIMEOUT ('%s'). Defaulting to %s.\n", netcashTimeoutStr, netcashTimeout)
	}
	cfg.NetcashTimeout = netcashTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
