package extract

import "github.com/abhisek/pyqtrack/internal/llm"

func object(props map[string]any) map[string]any {
	required := make([]any, 0, len(props))
	for _, k := range []string{"id", "title", "number", "label", "text", "marks", "questions", "subQuestions", "semesters"} {
		if _, ok := props[k]; ok {
			required = append(required, k)
		}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func list(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

// Schema is the structured output requested from the model. Every
// property is required so it also works as a strict OpenAI schema.
var Schema = &llm.Schema{
	Name:        "pyq-extraction",
	Description: "Exam questions grouped by semester, question number and sub-question",
	Definition: object(map[string]any{
		"semesters": list(object(map[string]any{
			"id":    str("Unique identifier for the semester"),
			"title": str("Semester heading exactly as written, e.g. S25 or W24"),
			"questions": list(object(map[string]any{
				"id":     str("Unique identifier for the question"),
				"number": str("Main question number, e.g. 5"),
				"subQuestions": list(object(map[string]any{
					"id":    str("Unique identifier for the sub-question"),
					"label": str("Sub-question label, e.g. (a)"),
					"text":  str("Full sub-question text without the label or marks"),
					"marks": str("Marks shown in brackets at the end, e.g. (7); empty if none"),
				})),
			})),
		})),
	}),
}
