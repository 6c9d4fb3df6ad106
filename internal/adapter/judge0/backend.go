package judge0

import (
	"context"
	"fmt"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// Judge0 status ids.
const (
	StatusInQueue             = 1
	StatusProcessing          = 2
	StatusAccepted            = 3
	StatusWrongAnswer         = 4
	StatusTimeLimitExceeded   = 5
	StatusCompilationError    = 6
	StatusRuntimeErrorSIGSEGV = 7
	StatusRuntimeErrorSIGXFSZ = 8
	StatusRuntimeErrorSIGFPE  = 9
	StatusRuntimeErrorSIGABRT = 10
	StatusRuntimeErrorNZEC    = 11
	StatusRuntimeErrorOther   = 12
	StatusInternalError       = 13
	StatusExecFormatError     = 14
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
	return domain.BackendJudge0
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

func (b *Backend) Execute(ctx context.Context, target domain.BackendTarget, req domain.ExecutionRequest) (*domain.RawExecutionResult, error) {
	if target.Kind != domain.BackendJudge0 {
		return nil, fmt.Errorf("judge0 cannot execute %s target", target.Kind)
	}
	resp, err := b.client.Submit(ctx, submissionRequest{
		LanguageID:   target.LanguageID,
		SourceCode:   req.SourceCode,
		Stdin:        req.Stdin,
		CPUTimeLimit: req.Limits.CPUTimeLimit,
		MemoryLimit:  req.Limits.MemoryLimit,
	})
	if err != nil {
		b.logger.Error("judge0 submission failed", "languageId", target.LanguageID, "error", err)
		return nil, err
	}

	raw := &domain.RawExecutionResult{
		Stdout:        resp.Stdout,
		Stderr:        resp.Stderr,
		CompileOutput: resp.CompileOutput,
		Time:          resp.Time,
		Memory:        resp.Memory,
	}
	if resp.Status != nil {
		raw.StatusID = resp.Status.ID
		raw.StatusDescription = resp.Status.Description
	}
	return raw, nil
}

func (b *Backend) ClassifyStatus(raw *domain.RawExecutionResult) domain.StatusClass {
	if raw == nil || raw.StatusID == nil {
		return domain.StatusOther
	}
	switch id := *raw.StatusID; {
	case id == StatusAccepted:
		return domain.StatusAccepted
	case id == StatusTimeLimitExceeded:
		return domain.StatusTimeLimitExceeded
	case id == StatusCompilationError:
		return domain.StatusCompileError
	case id >= StatusRuntimeErrorSIGSEGV && id <= StatusRuntimeErrorOther, id == StatusExecFormatError:
		return domain.StatusRuntimeError
	case id == StatusInternalError:
		return domain.StatusInternalError
	default:
		return domain.StatusOther
	}
}
