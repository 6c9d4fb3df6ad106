package config

import (
	"time"

	"github.com/spf13/viper"
)

type Judge0Config struct {
	Url            string `mapstructure:"url"`
	ApiKey         string `mapstructure:"api_key"`
	ApiKeyHeader   string `mapstructure:"api_key_header"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (c *Judge0Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type PistonConfig struct {
	Url            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (c *PistonConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func setBackendDefaults(v *viper.Viper) {
	v.SetDefault("judge0.url", "")
	v.SetDefault("judge0.api_key", "")
	v.SetDefault("judge0.api_key_header", "X-Auth-Token")
	v.SetDefault("judge0.timeout_seconds", 30)
	v.SetDefault("piston.url", "http://localhost:2000/api/v2")
	v.SetDefault("piston.timeout_seconds", 30)
}
