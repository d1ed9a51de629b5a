package llm

import (
	"strings"
)

// maxPromptChars caps how much title-block text goes to the model.
const maxPromptChars = 6000

// BuildSystemPrompt composes the fixed system message: the job-number,
// proposed-work and date rules for a bridge plan title sheet, and the
// JSON-only output constraint.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an assistant helping bridge engineers identify proposed bridge work.",
		"You receive the cleaned text of the title sheet (first page) of one bridge plan set.",

		// Job numbers
		"job_number: extract ALL job numbers in the text.",
		"A job number is exactly six digits, optionally followed by a single letter (e.g., 123456 or 123456A).",
		"If there are several, join the unique values into one comma-separated string with no duplicates.",
		"Ignore structure numbers such as B01-21022, V01-21022 or C01 of 22222; they are never job numbers.",

		// Proposed work
		"proposed_work: the text right after 'CONTRACT FOR:' is the scope of work (e.g., 'Bridge removal', 'Epoxy overlay').",
		"Also include every work task listed after a job number label (e.g., 'Job Number 201222A: ...').",
		"Do not include structure names or locations like 'Inkster Road Over Rouge River' or 'I-96 Over CSX RR'.",
		"Work text may arrive as one long squished word or several (e.g., BRIDGEREPLACEMENTANDAPPROACHRECONSTRUCTION); split it into readable words.",
		"Work may span multiple lines, bullets or job numbers; combine all unique items into one list, in the order they appear.",

		// Date
		"date: the date printed on the sheet if present, exactly as written; otherwise an empty string.",

		// Formatting hygiene
		"Return ONLY a JSON object with the keys job_number (string), proposed_work (array of strings) and date (string).",
		"Use empty strings or an empty array when nothing is found. Never output null.",
		"Do not add any text, bullets, explanations or Markdown outside the JSON object.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the file name and the normalized title-block text.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if name := strings.TrimSpace(req.FileName); name != "" {
		b.WriteString("File: ")
		b.WriteString(name)
		b.WriteString("\n")
	}

	text := strings.TrimSpace(req.Text)
	b.WriteString("\nTitle sheet text:\n")
	if text == "" {
		b.WriteString("(no text was found on the title sheet)")
		return b.String()
	}
	if len(text) > maxPromptChars {
		b.WriteString(text[:maxPromptChars])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}
