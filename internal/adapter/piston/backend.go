package piston

import (
	"context"
	"fmt"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

var _ secondary.Backend = (*Backend)(nil)

type Backend struct {
	client   *Client
	resolver *runtimes.Resolver
	logger   primary.Logger
}

func NewBackend(client *Client, logger primary.Logger, opts ...runtimes.Option) *Backend {
	opts = append([]runtimes.Option{runtimes.WithLogger(logger)}, opts...)
	return &Backend{
		client:   client,
		resolver: runtimes.NewResolver(client, opts...),
		logger:   logger,
	}
}

func (b *Backend) Kind() domain.BackendKind {
	return domain.BackendPiston
}

func (b *Backend) ResolveRuntime(ctx context.Context, language string) (domain.BackendTarget, error) {
	return b.resolver.Resolve(ctx, language)
}

func (b *Backend) RefreshRuntimes(ctx context.Context) error {
	_, err := b.resolver.Refresh(ctx)
	return err
}

func (b *Backend) Runtimes(ctx context.Context) (map[string]domain.BackendTarget, error) {
	return b.resolver.Catalog(ctx)
}

// Execute runs the program once. Resource limits are not forwarded.
func (b *Backend) Execute(ctx context.Context, target domain.BackendTarget, req domain.ExecutionRequest) (*domain.RawExecutionResult, error) {
	if target.Kind != domain.BackendPiston {
		return nil, fmt.Errorf("piston cannot execute %s target", target.Kind)
	}
	resp, err := b.client.Execute(ctx, executeRequest{
		Language: target.Language,
		Version:  target.Version,
		Files:    []file{{Content: req.SourceCode}},
		Stdin:    req.Stdin,
	})
	if err != nil {
		b.logger.Error("piston execution failed", "language", target.Language, "version", target.Version, "error", err)
		return nil, err
	}

	raw := &domain.RawExecutionResult{}
	if resp.Compile != nil {
		raw.CompileOutput = compileOutput(resp.Compile)
	}
	if run := resp.Run; run != nil {
		raw.Stdout = run.Stdout
		raw.Stderr = run.Stderr
		raw.ExitCode = run.Code
		raw.StatusID = run.Code
		raw.Signal = run.Signal
	}
	raw.StatusDescription = describe(raw)
	return raw, nil
}

// ClassifyStatus only distinguishes accepted, runtime error and internal error.
// A run without an exit code is an internal error even when Piston reports the
// signal that killed it.
func (b *Backend) ClassifyStatus(raw *domain.RawExecutionResult) domain.StatusClass {
	if raw == nil || raw.ExitCode == nil {
		return domain.StatusInternalError
	}
	if raw.Signal != nil && *raw.Signal != "" {
		return domain.StatusRuntimeError
	}
	if *raw.ExitCode != 0 {
		return domain.StatusRuntimeError
	}
	return domain.StatusAccepted
}

func describe(raw *domain.RawExecutionResult) string {
	switch {
	case raw.Signal != nil && *raw.Signal != "":
		return "Signal " + *raw.Signal
	case raw.ExitCode == nil:
		return "Internal Error"
	case *raw.ExitCode == 0:
		return "OK"
	default:
		return "Runtime Error"
	}
}

func compileOutput(s *stage) *string {
	if s.Output != nil && *s.Output != "" {
		return s.Output
	}
	if s.Stderr != nil && *s.Stderr != "" {
		return s.Stderr
	}
	return s.Stdout
}
