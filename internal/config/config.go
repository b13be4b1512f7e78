package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Port string
	} `mapstructure:"http"`

	API struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Forms struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"forms"`

	Breaker struct {
		Failures    uint32        `mapstructure:"failures"`
		OpenTimeout time.Duration `mapstructure:"open_timeout"`
	} `mapstructure:"breaker"`
}

// IsDev reports whether templates are read from disk instead of the
// embedded copy.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.App.Env) {
	case "", "dev", "development":
		return true
	}
	return false
}

// Load reads .env (if any), then MEBEL_* variables and the optional YAML file
// named by MEBEL_CONFIG. Variables win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MEBEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("http.port", "8080")
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("forms.ttl", 30*time.Minute)
	v.SetDefault("breaker.failures", 5)
	v.SetDefault("breaker.open_timeout", 30*time.Second)

	// the plain names the deployment scripts already export
	_ = v.BindEnv("http.port", "MEBEL_HTTP_PORT", "PORT")
	_ = v.BindEnv("app.env", "MEBEL_APP_ENV", "APP_ENV")

	if path := os.Getenv("MEBEL_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		return c, fmt.Errorf("config: api.base_url пуст")
	}
	return c, nil
}
