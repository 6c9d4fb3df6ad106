// Package summaryport keeps judged submissions in Redis for a limited time.
package summaryport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

const (
	summaryKeyPrefix  = "submission:summary:"
	defaultExpiration = time.Hour
)

var _ secondary.SummaryStore = (*SummaryRepository)(nil)

// SummaryRepository implements the SummaryStore interface with Redis
type SummaryRepository struct {
	redisClient redis.UniversalClient
	logger      primary.Logger
	expiration  time.Duration
}

func NewSummaryRepository(redisClient redis.UniversalClient, logger primary.Logger, expiration time.Duration) *SummaryRepository {
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &SummaryRepository{
		redisClient: redisClient,
		logger:      logger,
		expiration:  expiration,
	}
}

func (r *SummaryRepository) Save(ctx context.Context, summary *domain.SubmissionSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal submission summary: %w", err)
	}
	if err := r.redisClient.Set(ctx, summaryKeyPrefix+summary.ID.String(), data, r.expiration).Err(); err != nil {
		r.logger.Error("Failed to save submission summary", "submissionId", summary.ID, "error", err)
		return fmt.Errorf("failed to save submission summary: %w", err)
	}
	return nil
}

func (r *SummaryRepository) Get(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionSummary, error) {
	data, err := r.redisClient.Get(ctx, summaryKeyPrefix+submissionID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission summary: %w", err)
	}

	var summary domain.SubmissionSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission summary: %w", err)
	}
	return &summary, nil
}
