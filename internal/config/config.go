package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Strava   StravaConfig   `mapstructure:"strava"`
	Hevy     HevyConfig     `mapstructure:"hevy"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	S3       S3Config       `mapstructure:"s3"`
	Units    UnitsConfig    `mapstructure:"units"`
	State    StateConfig    `mapstructure:"state"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// StravaConfig holds the OAuth application credentials for the activity
// provider. The URL fields exist for tests; empty means the real endpoints.
type StravaConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
	BaseURL      string `mapstructure:"base_url"`
	AuthURL      string `mapstructure:"auth_url"`
	TokenURL     string `mapstructure:"token_url"`
}

// HevyConfig holds the strength-history provider settings. An empty APIKey
// disables the strength source entirely.
type HevyConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// UnitsConfig sets the unit preferences a fresh session starts with.
type UnitsConfig struct {
	Distance string `mapstructure:"distance"`
	Weight   string `mapstructure:"weight"`
}

// StateConfig configures the session-state store. SealKey encrypts the
// stored provider credentials at rest; any non-empty passphrase works.
type StateConfig struct {
	SealKey string `mapstructure:"seal_key"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variables override the file, e.g. strava.client_id ->
	// STRAVA_CLIENT_ID, openai.api_key -> OPENAI_API_KEY.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "gotrain")
	viper.SetDefault("hevy.page_size", 5)
	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("units.distance", "kilometers")
	viper.SetDefault("units.weight", "kg")

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults may be enough.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
