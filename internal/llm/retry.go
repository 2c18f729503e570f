package llm

import (
	"context"
	"time"

	"studykit-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

// Retrying wraps a Client with an explicit, bounded retry policy for
// transient failures (timeouts, transport errors). Malformed output is never
// retried here; schema repair is the caller's decision.
type Retrying struct {
	Base       Client
	MaxRetries int
}

// WithRetries returns client unchanged when maxRetries <= 0.
func WithRetries(client Client, maxRetries int) Client {
	if maxRetries <= 0 {
		return client
	}
	return &Retrying{Base: client, MaxRetries: maxRetries}
}

func (r *Retrying) Summarize(ctx context.Context, text string) (string, error) {
	var out string
	err := r.do(ctx, "summarize", func(ctx context.Context) error {
		var callErr error
		out, callErr = r.Base.Summarize(ctx, text)
		return callErr
	})
	return out, err
}

func (r *Retrying) Answer(ctx context.Context, summary, question string) (string, error) {
	var out string
	err := r.do(ctx, "answer", func(ctx context.Context) error {
		var callErr error
		out, callErr = r.Base.Answer(ctx, summary, question)
		return callErr
	})
	return out, err
}

func (r *Retrying) GenerateQuiz(ctx context.Context, summary string) ([]QuizItem, error) {
	var out []QuizItem
	err := r.do(ctx, "quiz", func(ctx context.Context) error {
		var callErr error
		out, callErr = r.Base.GenerateQuiz(ctx, summary)
		return callErr
	})
	return out, err
}

func (r *Retrying) do(ctx context.Context, op string, call func(context.Context) error) error {
	err := call(ctx)
	for attempt := 1; attempt <= r.MaxRetries; attempt++ {
		if err == nil || !Transient(err) {
			return err
		}

		delay := retryBaseDelay * time.Duration(attempt)
		telemetry.Warn("llm.retry", map[string]any{
			"operation": op,
			"attempt":   attempt,
			"delay_ms":  delay.Milliseconds(),
			"error":     err.Error(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ClassifyTransport(ctx.Err())
		}

		err = call(ctx)
	}
	return err
}

var _ Client = (*Retrying)(nil)
