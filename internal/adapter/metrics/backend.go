package metrics

import (
	"context"
	"time"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

var _ secondary.Backend = (*InstrumentedBackend)(nil)

// InstrumentedBackend times every network-bound call of the wrapped backend.
type InstrumentedBackend struct {
	next     secondary.Backend
	recorder *Recorder
}

func InstrumentBackend(next secondary.Backend, recorder *Recorder) *InstrumentedBackend {
	return &InstrumentedBackend{next: next, recorder: recorder}
}

func (b *InstrumentedBackend) Kind() domain.BackendKind {
	return b.next.Kind()
}

func (b *InstrumentedBackend) ResolveRuntime(ctx context.Context, language string) (domain.BackendTarget, error) {
	start := time.Now()
	target, err := b.next.ResolveRuntime(ctx, language)
	b.recorder.observe(b.next.Kind(), "resolve", start, err)
	return target, err
}

func (b *InstrumentedBackend) RefreshRuntimes(ctx context.Context) error {
	start := time.Now()
	err := b.next.RefreshRuntimes(ctx)
	b.recorder.observe(b.next.Kind(), "refresh", start, err)
	return err
}

func (b *InstrumentedBackend) Runtimes(ctx context.Context) (map[string]domain.BackendTarget, error) {
	return b.next.Runtimes(ctx)
}

func (b *InstrumentedBackend) Execute(ctx context.Context, target domain.BackendTarget, req domain.ExecutionRequest) (*domain.RawExecutionResult, error) {
	start := time.Now()
	raw, err := b.next.Execute(ctx, target, req)
	b.recorder.observe(b.next.Kind(), "execute", start, err)
	return raw, err
}

func (b *InstrumentedBackend) ClassifyStatus(raw *domain.RawExecutionResult) domain.StatusClass {
	return b.next.ClassifyStatus(raw)
}
