package secondary

import (
	"context"

	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// Backend is an external sandboxed execution service.
type Backend interface {
	Kind() domain.BackendKind

	// ResolveRuntime maps a logical language name to a concrete runtime.
	ResolveRuntime(ctx context.Context, language string) (domain.BackendTarget, error)

	// RefreshRuntimes forces a fetch of the runtime list.
	RefreshRuntimes(ctx context.Context) error

	// Runtimes returns the current language catalog, fetching it when stale.
	Runtimes(ctx context.Context) (map[string]domain.BackendTarget, error)

	// Execute runs one program against one stdin.
	Execute(ctx context.Context, target domain.BackendTarget, req domain.ExecutionRequest) (*domain.RawExecutionResult, error)

	// ClassifyStatus maps a raw result onto the shared status taxonomy.
	ClassifyStatus(raw *domain.RawExecutionResult) domain.StatusClass
}
