// Package natsport publishes judging events to NATS.
package natsport

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

var _ secondary.ResultSink = (*Publisher)(nil)

// CaseEvent is published once per finished test case.
type CaseEvent struct {
	SubmissionID uuid.UUID          `json:"submission_id"`
	Index        int                `json:"index"`
	TestCaseID   *int64             `json:"test_case_id"`
	IsSample     bool               `json:"is_sample"`
	Status       string             `json:"status"`
	Class        domain.StatusClass `json:"class"`
	Passed       bool               `json:"passed"`
	Time         *string            `json:"time"`
	Memory       *int64             `json:"memory"`
	FinishedAt   time.Time          `json:"finished_at"`
}

// SummaryEvent is published once per judged submission.
type SummaryEvent struct {
	SubmissionID uuid.UUID             `json:"submission_id"`
	Mode         domain.Mode           `json:"mode"`
	Language     string                `json:"language"`
	Verdict      domain.Verdict        `json:"verdict"`
	Passed       int                   `json:"passed"`
	Total        int                   `json:"total"`
	Hidden       *domain.HiddenSummary `json:"hidden"`
	FinishedAt   time.Time             `json:"finished_at"`
}

type Publisher struct {
	nc             *nats.Conn
	caseSubject    string
	summarySubject string
	logger         primary.Logger
}

func NewPublisher(nc *nats.Conn, caseSubject, summarySubject string, logger primary.Logger) *Publisher {
	return &Publisher{
		nc:             nc,
		caseSubject:    caseSubject,
		summarySubject: summarySubject,
		logger:         logger,
	}
}

// Connect dials NATS with the reconnect policy used by the judge.
func Connect(url string, logger primary.Logger) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
}

// CaseFinished drops the event with a log line when publishing fails; judging
// never waits on NATS.
func (p *Publisher) CaseFinished(_ context.Context, submissionID uuid.UUID, index int, result domain.CaseResult) {
	p.publish(p.caseSubject, CaseEvent{
		SubmissionID: submissionID,
		Index:        index,
		TestCaseID:   result.ID,
		IsSample:     result.IsSample,
		Status:       result.Status,
		Class:        result.Class,
		Passed:       result.Passed,
		Time:         result.Time,
		Memory:       result.Memory,
		FinishedAt:   time.Now().UTC(),
	})
}

func (p *Publisher) SubmissionFinished(_ context.Context, summary *domain.SubmissionSummary) {
	p.publish(p.summarySubject, SummaryEvent{
		SubmissionID: summary.ID,
		Mode:         summary.Mode,
		Language:     summary.Language,
		Verdict:      summary.Verdict,
		Passed:       summary.Passed,
		Total:        summary.Total,
		Hidden:       summary.Hidden,
		FinishedAt:   time.Now().UTC(),
	})
}

func (p *Publisher) publish(subject string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Error marshalling judge event", "subject", subject, "error", err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Error publishing judge event", "subject", subject, "error", err)
		return
	}
	p.logger.Debug("Published judge event", "subject", subject)
}
