package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	DebugMode      bool            `mapstructure:"debug_mode"`
	JudgeConfig    *JudgeConfig    `mapstructure:"judge"`
	Judge0Config   *Judge0Config   `mapstructure:"judge0"`
	PistonConfig   *PistonConfig   `mapstructure:"piston"`
	RedisConfig    *RedisConfig    `mapstructure:"redis"`
	PostgresConfig *PostgresConfig `mapstructure:"postgres"`
	NatsConfig     *NatsConfig     `mapstructure:"nats"`
	JwtConfig      *JwtConfig      `mapstructure:"jwt"`
	HttpConfig     *HttpConfig     `mapstructure:"http"`
}

// NewSystemConfig loads envFile into the process environment when it exists,
// then reads every setting from the environment. Keys map to variables by
// upper-casing and replacing dots, so judge0.url is JUDGE0_URL.
func NewSystemConfig(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug_mode", false)
	setJudgeDefaults(v)
	setBackendDefaults(v)
	setStorageDefaults(v)
	setTransportDefaults(v)

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.JudgeConfig.Backend {
	case BackendJudge0:
		if c.Judge0Config.Url == "" {
			return errors.New("config: JUDGE0_URL is required for the judge0 backend")
		}
	case BackendPiston:
		if c.PistonConfig.Url == "" {
			return errors.New("config: PISTON_URL is required for the piston backend")
		}
	default:
		return fmt.Errorf("config: unknown JUDGE_BACKEND %q", c.JudgeConfig.Backend)
	}
	if c.JudgeConfig.Parallelism < 1 {
		c.JudgeConfig.Parallelism = 1
	}
	return nil
}
