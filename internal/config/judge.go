package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	BackendJudge0 = "judge0"
	BackendPiston = "piston"
)

type JudgeConfig struct {
	Backend                    string  `mapstructure:"backend"`
	Parallelism                int     `mapstructure:"parallelism"`
	IsolateCaseErrors          bool    `mapstructure:"isolate_case_errors"`
	RuntimeCacheTTLSeconds     int     `mapstructure:"runtime_cache_ttl_seconds"`
	RuntimeWarmIntervalSeconds int     `mapstructure:"runtime_warm_interval_seconds"`
	CPUTimeLimit               float64 `mapstructure:"cpu_time_limit"`
	MemoryLimit                int64   `mapstructure:"memory_limit"`
}

func setJudgeDefaults(v *viper.Viper) {
	v.SetDefault("judge.backend", BackendPiston)
	v.SetDefault("judge.parallelism", 1)
	v.SetDefault("judge.isolate_case_errors", false)
	v.SetDefault("judge.runtime_cache_ttl_seconds", 600)
	v.SetDefault("judge.runtime_warm_interval_seconds", 0)
	v.SetDefault("judge.cpu_time_limit", 0)
	v.SetDefault("judge.memory_limit", 0)
}

func (c *JudgeConfig) RuntimeCacheTTL() time.Duration {
	return time.Duration(c.RuntimeCacheTTLSeconds) * time.Second
}

// RuntimeWarmInterval is zero when background warming is off.
func (c *JudgeConfig) RuntimeWarmInterval() time.Duration {
	if c.RuntimeWarmIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RuntimeWarmIntervalSeconds) * time.Second
}

// Limits returns nil pointers for limits left at zero.
func (c *JudgeConfig) Limits() (cpu *float64, memory *int64) {
	if c.CPUTimeLimit > 0 {
		v := c.CPUTimeLimit
		cpu = &v
	}
	if c.MemoryLimit > 0 {
		v := c.MemoryLimit
		memory = &v
	}
	return cpu, memory
}
