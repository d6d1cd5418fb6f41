package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisStateDB       int    `mapstructure:"REDIS_STATE_DB"`
	RedisApprovalDB    int    `mapstructure:"REDIS_APPROVAL_DB"`
	RedisNLUDB         int    `mapstructure:"REDIS_NLU_DB"`
	RedisReviewQueueDB int    `mapstructure:"REDIS_REVIEW_QUEUE_DB"`

	// Workflow engine tuning.
	MaxDetourDepth int `mapstructure:"MAX_DETOUR_DEPTH"`

	// Gemini API key for the NLU extractor. Empty key selects the local extractor.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Static token guarding the approval (HIL) endpoints.
	ApprovalToken string `mapstructure:"APPROVAL_TOKEN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_STATE_DB", 0)
	viper.SetDefault("REDIS_APPROVAL_DB", 1)
	viper.SetDefault("REDIS_NLU_DB", 2)
	viper.SetDefault("REDIS_REVIEW_QUEUE_DB", 3)
	viper.SetDefault("MAX_DETOUR_DEPTH", 4)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("APPROVAL_TOKEN", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
