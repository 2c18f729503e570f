package llm

import "context"

// MockClient is a controllable Client for tests. Each func field may be nil,
// in which case a canned success value is returned. Call counters let tests
// assert that a path never reached the generative service.
type MockClient struct {
	SummarizeFunc    func(ctx context.Context, text string) (string, error)
	AnswerFunc       func(ctx context.Context, summary, question string) (string, error)
	GenerateQuizFunc func(ctx context.Context, summary string) ([]QuizItem, error)

	SummarizeCalls int
	AnswerCalls    int
	QuizCalls      int
}

func (m *MockClient) Summarize(ctx context.Context, text string) (string, error) {
	m.SummarizeCalls++
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}
	return "mock summary", nil
}

func (m *MockClient) Answer(ctx context.Context, summary, question string) (string, error) {
	m.AnswerCalls++
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, summary, question)
	}
	return "mock answer", nil
}

func (m *MockClient) GenerateQuiz(ctx context.Context, summary string) ([]QuizItem, error) {
	m.QuizCalls++
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, summary)
	}
	return SampleQuiz(), nil
}

// SampleQuiz returns a quiz in the fixed 3+2 shape for tests.
func SampleQuiz() []QuizItem {
	return []QuizItem{
		{Question: "What is the main topic?", Options: []string{"Storage", "Networking", "Compilers", "Testing"}},
		{Question: "Which approach is described?", Options: []string{"Batching", "Streaming"}},
		{Question: "What does the author recommend?", Options: []string{"Caching", "Sharding", "Retries"}},
		{Question: "Name one limitation mentioned in the text."},
		{Question: "Summarize the conclusion in one sentence."},
	}
}

var _ Client = (*MockClient)(nil)
