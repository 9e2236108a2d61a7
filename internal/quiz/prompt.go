package quiz

import (
	"fmt"
	"strings"
)

// Most recent prior questions included in a generation prompt. Longer
// histories only grow the context without improving novelty.
const maxPromptExclusions = 200

func topicExtractionPrompt(textContent string, knownTopics []string) string {
	known := "None"
	if len(knownTopics) > 0 {
		known = strings.Join(knownTopics, ", ")
	}

	return fmt.Sprintf(`You are a topic extraction assistant. Please analyze the following text and extract 3-8 key topics that would be suitable for creating quiz questions.
Only extract topics that are relevant to the text content.

Output format:
{
    "topics": ["Topic 1", "Topic 2", "Topic 3"]
}

If the following topics are relevant, include them in the output exactly as they are without any modification along with any new topics you find:

%s

Text content:
%s`, known, textContent)
}

func questionPrompt(textContent, topic string, excluded []string) string {
	return fmt.Sprintf(`You are a quiz generator. Please generate a single multiple-choice question based on the following topic: %s.

OUTPUT FORMAT:

{
    "question": "What is the capital of France?",
    "options": ["Paris", "London", "Berlin", "Madrid"],
    "answer": "Paris"
}

Generate exactly one question with exactly four options, in the output format. No other text or explanation.

The question should be based only on the text content, and not on any other information.
Make sure you do not repeat any of the previous questions.

The previous questions are:

%s

The text content is:

%s`, topic, formatExclusions(excluded), textContent)
}

func titlePrompt(textContent string) string {
	const sample = 1000
	if len(textContent) > sample {
		textContent = textContent[:sample] + "..."
	}

	return fmt.Sprintf(`You are a document naming assistant. Please analyze the following text and generate a concise title (maximum 60 characters) that captures the main topic or theme of the document.
Generate a clear, professional title that would help users identify this document. Return only the title, no quotes or additional text.

Text content:
%s`, textContent)
}

// formatExclusions renders prior question texts as a numbered list for the
// prompt, keeping only the most recent entries.
func formatExclusions(excluded []string) string {
	if len(excluded) == 0 {
		return "None"
	}
	if len(excluded) > maxPromptExclusions {
		excluded = excluded[len(excluded)-maxPromptExclusions:]
	}

	var b strings.Builder
	for i, q := range excluded {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
