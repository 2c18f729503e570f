package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"studykit-backend/internal/llm"
)

// Client implements llm.Client using the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient constructs a Gemini client. The genai client is created once and
// reused for every call.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Summarize condenses the given text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.generate(ctx, llm.SummarizePrompt(text), "")
}

// Answer responds to a question using only the stored summary.
func (c *Client) Answer(ctx context.Context, summary, question string) (string, error) {
	return c.generate(ctx, llm.AnswerPrompt(summary, question), "")
}

// GenerateQuiz requests the fixed quiz mixture and validates the JSON response.
func (c *Client) GenerateQuiz(ctx context.Context, summary string) ([]llm.QuizItem, error) {
	content, err := c.generate(ctx, llm.QuizPrompt(summary), llm.QuizSystemInstruction())
	if err != nil {
		return nil, err
	}
	return llm.ParseQuizJSON([]byte(content))
}

func (c *Client) generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var cfg *genai.GenerateContentConfig
	if systemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		}
	}

	result, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", llm.ClassifyTransport(err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("%w: gemini response empty content", llm.ErrUnavailable)
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
