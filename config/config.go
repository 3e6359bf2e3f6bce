package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Identity provider / Google API credentials.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	CalendarID            string `mapstructure:"CALENDAR_ID"`

	// Cloudinary storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Booking engine behaviour.
	SlotGranularityMin int    `mapstructure:"SLOT_GRANULARITY_MIN"`
	DynamicDays        bool   `mapstructure:"DYNAMIC_DAYS"`
	ServiceAreaZips    string `mapstructure:"SERVICE_AREA_ZIPS"` // comma-separated allow-list
	SeedCronSpec       string `mapstructure:"SEED_CRON_SPEC"`
}

// AppConfig is the loaded configuration. Load populates it and also returns
// a pointer so the composition root can pass it explicitly.
var AppConfig Config

// Load initializes Viper to read config values from env, file, or defaults.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_NAME", "wrenchly")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("SLOT_GRANULARITY_MIN", 30)
	viper.SetDefault("DYNAMIC_DAYS", false)
	viper.SetDefault("SEED_CRON_SPEC", "0 18 * * SUN")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return &AppConfig
}

// GetEnv returns the application environment.
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction checks if the environment is production.
func IsProduction() bool {
	return GetEnv() == "production"
}
