// Package executor builds the configured execution backend.
package executor

import (
	"fmt"

	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/judge0"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/piston"
	"gitlab.com/fcv-2025.net/codejudge/internal/config"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
)

func NewBackend(cfg *config.AppConfig, logger primary.Logger) (secondary.Backend, error) {
	ttl := runtimes.WithTTL(cfg.JudgeConfig.RuntimeCacheTTL())

	switch cfg.JudgeConfig.Backend {
	case config.BackendJudge0:
		opts := []judge0.ClientOption{}
		if cfg.Judge0Config.ApiKey != "" {
			opts = append(opts, judge0.WithAPIKey(cfg.Judge0Config.ApiKeyHeader, cfg.Judge0Config.ApiKey))
		}
		client := judge0.NewClient(cfg.Judge0Config.Url, cfg.Judge0Config.Timeout(), opts...)
		return judge0.NewBackend(client, logger, ttl), nil
	case config.BackendPiston:
		client := piston.NewClient(cfg.PistonConfig.Url, cfg.PistonConfig.Timeout(), nil)
		return piston.NewBackend(client, logger, ttl), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.JudgeConfig.Backend)
	}
}
