package llm

import (
	"errors"
	"testing"
)

const validQuizJSON = `{"questions":[
	{"question":"Q1?","options":["a","b","c","d"]},
	{"question":"Q2?","options":["a","b"]},
	{"question":"Q3?","options":["a","b","c"]},
	{"question":"Q4?"},
	{"question":"Q5?"}
]}`

func TestParseQuizJSONValid(t *testing.T) {
	items, err := ParseQuizJSON([]byte(validQuizJSON))
	if err != nil {
		t.Fatalf("ParseQuizJSON: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	if items[0].Question != "Q1?" {
		t.Fatalf("unexpected first question: %q", items[0].Question)
	}
	if len(items[0].Options) != 4 {
		t.Fatalf("expected 4 options on first item, got %d", len(items[0].Options))
	}
	if items[3].Options != nil || items[4].Options != nil {
		t.Fatalf("short-answer items must not carry options")
	}
}

func TestParseQuizJSONFenced(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	items, err := ParseQuizJSON([]byte(fenced))
	if err != nil {
		t.Fatalf("ParseQuizJSON fenced: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
}

func TestParseQuizJSONBareArray(t *testing.T) {
	bare := `[
		{"question":"Q1?","options":["a","b"]},
		{"question":"Q2?","options":["a","b"]},
		{"question":"Q3?","options":["a","b"]},
		{"question":"Q4?"},
		{"question":"Q5?"}
	]`
	items, err := ParseQuizJSON([]byte(bare))
	if err != nil {
		t.Fatalf("ParseQuizJSON bare array: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
}

func TestParseQuizJSONRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "three questions about storage"},
		{"too few items", `{"questions":[{"question":"Q1?","options":["a","b"]}]}`},
		{"too many items", `{"questions":[
			{"question":"Q1?","options":["a","b"]},
			{"question":"Q2?","options":["a","b"]},
			{"question":"Q3?","options":["a","b"]},
			{"question":"Q4?","options":["a","b"]},
			{"question":"Q5?"},
			{"question":"Q6?"}
		]}`},
		{"single option", `{"questions":[
			{"question":"Q1?","options":["a"]},
			{"question":"Q2?","options":["a","b"]},
			{"question":"Q3?","options":["a","b"]},
			{"question":"Q4?"},
			{"question":"Q5?"}
		]}`},
		{"empty question text", `{"questions":[
			{"question":"","options":["a","b"]},
			{"question":"Q2?","options":["a","b"]},
			{"question":"Q3?","options":["a","b"]},
			{"question":"Q4?"},
			{"question":"Q5?"}
		]}`},
		{"empty option text", `{"questions":[
			{"question":"Q1?","options":["a"," "]},
			{"question":"Q2?","options":["a","b"]},
			{"question":"Q3?","options":["a","b"]},
			{"question":"Q4?"},
			{"question":"Q5?"}
		]}`},
		{"wrong mixture", `{"questions":[
			{"question":"Q1?","options":["a","b"]},
			{"question":"Q2?","options":["a","b"]},
			{"question":"Q3?"},
			{"question":"Q4?"},
			{"question":"Q5?"}
		]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseQuizJSON([]byte(tc.raw)); !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}
