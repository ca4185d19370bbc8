package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`

	GeocoderBaseURL      string        `mapstructure:"GEOCODER_BASE_URL"`
	GeocoderUserAgent    string        `mapstructure:"GEOCODER_USER_AGENT"`
	GeocoderTimeout      time.Duration `mapstructure:"GEOCODER_TIMEOUT"`
	GeocoderCountryCodes string        `mapstructure:"GEOCODER_COUNTRY_CODES"`
	GeocoderRateLimit    float64       `mapstructure:"GEOCODER_RATE_LIMIT"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	SeedOnStart    bool   `mapstructure:"SEED_ON_START"`
	ImportCSVPath  string `mapstructure:"IMPORT_CSV_PATH"`
	ImportSchedule string `mapstructure:"IMPORT_SCHEDULE"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// LoadConfig reads app.env from path. A missing file is fine; defaults and
// environment variables still apply.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:5000")
	v.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODER_USER_AGENT", "furugiya_map_v3")
	v.SetDefault("GEOCODER_TIMEOUT", "10s")
	v.SetDefault("GEOCODER_COUNTRY_CODES", "jp")
	v.SetDefault("GEOCODER_RATE_LIMIT", 1.0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("IMPORT_CSV_PATH", "")
	v.SetDefault("IMPORT_SCHEDULE", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
