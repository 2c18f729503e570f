package llm

import "context"

// Client abstracts the generative-text service behind the three capabilities
// the pipeline needs. Implementations must not retry on their own; retry
// policy is applied explicitly by the Retrying wrapper.
type Client interface {
	// Summarize condenses text into a short summary. Callers truncate the
	// input to the configured cap before calling.
	Summarize(ctx context.Context, text string) (string, error)
	// Answer responds to a question using only the stored summary.
	Answer(ctx context.Context, summary, question string) (string, error)
	// GenerateQuiz produces three multiple-choice and two short-answer
	// questions derived from the summary.
	GenerateQuiz(ctx context.Context, summary string) ([]QuizItem, error)
}

// QuizItem is one generated question. Options is present only for
// multiple-choice items and preserves the service's ordering. Quiz items are
// never persisted; they live for one generation round trip plus an optional
// export call.
type QuizItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}
