package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestWithRetriesZeroReturnsBase(t *testing.T) {
	base := &MockClient{}
	if got := WithRetries(base, 0); got != Client(base) {
		t.Fatalf("expected base client back for zero retries")
	}
}

func TestRetryingRetriesTransientErrors(t *testing.T) {
	calls := 0
	base := &MockClient{
		SummarizeFunc: func(ctx context.Context, text string) (string, error) {
			calls++
			if calls < 3 {
				return "", fmt.Errorf("%w: connection refused", ErrUnavailable)
			}
			return "recovered", nil
		},
	}

	client := WithRetries(base, 2)
	out, err := client.Summarize(context.Background(), "text")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out != "recovered" {
		t.Fatalf("expected recovered summary, got %q", out)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryingStopsAtBudget(t *testing.T) {
	base := &MockClient{
		SummarizeFunc: func(ctx context.Context, text string) (string, error) {
			return "", fmt.Errorf("%w: still down", ErrUnavailable)
		},
	}

	client := WithRetries(base, 2)
	_, err := client.Summarize(context.Background(), "text")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if base.SummarizeCalls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", base.SummarizeCalls)
	}
}

func TestRetryingDoesNotRetryMalformed(t *testing.T) {
	base := &MockClient{
		GenerateQuizFunc: func(ctx context.Context, summary string) ([]QuizItem, error) {
			return nil, fmt.Errorf("%w: bad shape", ErrMalformed)
		},
	}

	client := WithRetries(base, 3)
	_, err := client.GenerateQuiz(context.Background(), "summary")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if base.QuizCalls != 1 {
		t.Fatalf("malformed output must not be retried, got %d calls", base.QuizCalls)
	}
}
