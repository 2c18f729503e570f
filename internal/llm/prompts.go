package llm

import "fmt"

// Prompts are deliberately plain: the summary is the only context ever sent
// for answers and quizzes, so answer quality is bounded by summary fidelity.

const quizSystemInstruction = "You are a quiz generation engine. Respond with JSON only. No markdown. " +
	`The response must be an object of the form {"questions":[{"question":"...","options":["...","..."]}]}. ` +
	"Generate exactly three multiple choice questions (each with an options array of at least two entries, " +
	"one of them correct) followed by exactly two short answer questions (no options key)."

// SummarizePrompt builds the prompt for the summarize capability.
func SummarizePrompt(text string) string {
	return fmt.Sprintf("Summarize the following text:\n%s", text)
}

// AnswerPrompt builds the prompt for the answer capability. It references the
// stored summary, never the original document text.
func AnswerPrompt(summary, question string) string {
	return fmt.Sprintf("Answer this question based on the summary: %s\nQuestion: %s", summary, question)
}

// QuizPrompt builds the prompt for the quiz capability.
func QuizPrompt(summary string) string {
	return fmt.Sprintf("Generate three multiple choice and two short answer questions in JSON based on this summary:\n%s", summary)
}

// QuizSystemInstruction returns the system message pinning down the quiz
// response shape.
func QuizSystemInstruction() string {
	return quizSystemInstruction
}
