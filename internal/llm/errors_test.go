package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyTransport(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), ErrTimeout},
		{"client timeout text", errors.New("Post \"x\": (Client.Timeout exceeded while awaiting headers)"), ErrTimeout},
		{"generic transport", errors.New("connection refused"), ErrUnavailable},
		{"already classified", fmt.Errorf("%w: upstream 503", ErrUnavailable), ErrUnavailable},
		{"already malformed", fmt.Errorf("%w: bad json", ErrMalformed), ErrMalformed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyTransport(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTransient(t *testing.T) {
	if !Transient(fmt.Errorf("%w: x", ErrTimeout)) {
		t.Fatalf("timeout should be transient")
	}
	if !Transient(fmt.Errorf("%w: x", ErrUnavailable)) {
		t.Fatalf("unavailable should be transient")
	}
	if Transient(fmt.Errorf("%w: x", ErrMalformed)) {
		t.Fatalf("malformed must not be transient")
	}
}
