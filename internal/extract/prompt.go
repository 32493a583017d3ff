package extract

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful assistant that extracts and structures exam questions from text. " +
	"Always respond with valid JSON only, no additional text."

var rules = []string{
	"Identify semester headings like 'S25', 'W24', etc.",
	"Group questions under these semesters.",
	"Each question has a main number (e.g., 5, 6).",
	"Each question contains sub-questions labeled (a), (b), etc.",
	"Capture the marks in brackets at the end of sub-questions.",
	"Ignore any summary sections, notes, or unrelated introductory text.",
	"Generate a unique ID for each semester, question, and sub-question.",
}

// buildUserMessage wraps the pasted exam text with the extraction rules.
func buildUserMessage(raw string) string {
	var b strings.Builder
	b.WriteString("Extract questions from the following text and format them into a structured JSON format.\n\n")
	b.WriteString("Rules:\n")
	for i, r := range rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}
	b.WriteString("\nInput text:\n")
	b.WriteString(raw)
	return b.String()
}
