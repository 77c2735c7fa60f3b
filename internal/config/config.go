package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Key     string `yaml:"key" env:"REDIS_KEY" env-default:"game:current"`
}

// MustLoad - load all configurations in config.yml file. Without the file, only the environment is read.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read config from environment: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
