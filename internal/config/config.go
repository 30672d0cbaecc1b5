package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	HTTPAddr        string        `yaml:"http-addr" env:"TTT_HTTP_ADDR" env-default:":8080"`
	HighlightWinner bool          `yaml:"highlight-winner" env:"TTT_HIGHLIGHT_WINNER" env-default:"true"`
	SessionTTL      time.Duration `yaml:"session-ttl" env:"TTT_SESSION_TTL" env-default:"30m"`
	Heartbeat       time.Duration `yaml:"heartbeat" env:"TTT_HEARTBEAT" env-default:"15s"`
}

// Load reads the yaml file at path and then the environment. With an empty
// path only the environment and defaults are used.
func Load(path string) (*Config, error) {
	conf := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(conf); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		return conf, nil
	}

	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}

	return conf, nil
}

// MustLoad - like Load but panics on error.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}

	return conf
}
