package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	quizChoiceCount   = 3
	quizShortCount    = 2
	quizMinOptions    = 2
	quizExpectedItems = quizChoiceCount + quizShortCount
)

type quizResponse struct {
	Questions []QuizItem `json:"questions"`
}

// ParseQuizJSON validates the service's structured quiz output. This parse is
// the most fragile link in the pipeline: anything that does not match the
// fixed 3 multiple-choice + 2 short-answer shape is ErrMalformed, never a
// silently coerced or partial list.
func ParseQuizJSON(raw []byte) ([]QuizItem, error) {
	cleaned := stripCodeFence(string(raw))
	if strings.TrimSpace(cleaned) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformed)
	}

	var parsed quizResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		// Some models emit a bare array instead of the wrapper object.
		var items []QuizItem
		if arrErr := json.Unmarshal([]byte(cleaned), &items); arrErr != nil {
			return nil, fmt.Errorf("%w: unmarshal: %v", ErrMalformed, err)
		}
		parsed.Questions = items
	}

	if err := validateQuizItems(parsed.Questions); err != nil {
		return nil, err
	}
	return parsed.Questions, nil
}

func validateQuizItems(items []QuizItem) error {
	if len(items) != quizExpectedItems {
		return fmt.Errorf("%w: expected %d questions, got %d", ErrMalformed, quizExpectedItems, len(items))
	}

	choice := 0
	short := 0
	for i, item := range items {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("%w: question %d is empty", ErrMalformed, i+1)
		}
		if item.Options == nil {
			short++
			continue
		}
		if len(item.Options) < quizMinOptions {
			return fmt.Errorf("%w: question %d has %d options, need at least %d", ErrMalformed, i+1, len(item.Options), quizMinOptions)
		}
		for j, opt := range item.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("%w: question %d option %d is empty", ErrMalformed, i+1, j+1)
			}
		}
		choice++
	}

	if choice != quizChoiceCount || short != quizShortCount {
		return fmt.Errorf("%w: expected %d multiple-choice and %d short-answer questions, got %d and %d",
			ErrMalformed, quizChoiceCount, quizShortCount, choice, short)
	}
	return nil
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON in one despite instructions.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
