package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken      string        `envconfig:"BOT_TOKEN" required:"true"`
	WeatherAPIKey string        `envconfig:"OPENWEATHERMAP_API_KEY" required:"true"`
	WeatherAPIURL string        `envconfig:"WEATHER_API_URL" default:"https://api.openweathermap.org/data/2.5"`
	TickInterval  time.Duration `envconfig:"TICK_INTERVAL" default:"60s"` // scheduler scan period
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`    // debug|info|warn|error
	HTTPAddr      string        `envconfig:"HTTP_ADDR" default:":8080"`   // healthz
}

// Load reads an optional .env file, then environment variables, into Config.
func Load() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
