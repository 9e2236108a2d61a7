package quiz

import (
	"context"
	"strings"
)

// Attempts per quiz slot before it is given up on. Counts the first call.
const maxSlotAttempts = 3

// GenerateQuiz drives GenerateOne across numQuestions slots. Topics are
// assigned round-robin then shuffled to avoid strict clustering; an empty
// topic list falls back to a single synthetic topic. Questions duplicating
// previousQuestionTexts or an earlier slot (case-insensitive, trimmed) are
// discarded and retried up to maxSlotAttempts; exhausted slots are skipped,
// so the result may be shorter than numQuestions. Never returns an error.
func (g *Generator) GenerateQuiz(ctx context.Context, textContent string, topics, previousQuestionTexts []string, numQuestions int) []Question {
	assignment := g.topicAssignment(topics, numQuestions)

	seen := make(map[string]struct{}, len(previousQuestionTexts)+numQuestions)
	for _, text := range previousQuestionTexts {
		seen[normalizeQuestionText(text)] = struct{}{}
	}

	questions := make([]Question, 0, numQuestions)
	excluded := append([]string(nil), previousQuestionTexts...)

	for _, topic := range assignment {
		if ctx.Err() != nil {
			break
		}

		for attempt := 1; attempt <= maxSlotAttempts; attempt++ {
			q := g.GenerateOne(ctx, textContent, topic, excluded)
			if q == nil {
				continue
			}

			key := normalizeQuestionText(q.Text)
			if _, dup := seen[key]; dup {
				g.logger.Debug().Str("topic", topic).Int("attempt", attempt).Msg("duplicate question discarded")
				continue
			}

			seen[key] = struct{}{}
			excluded = append(excluded, q.Text)
			questions = append(questions, *q)
			break
		}
	}

	return questions
}

// topicAssignment cycles topics to fill numQuestions slots, then shuffles.
func (g *Generator) topicAssignment(topics []string, numQuestions int) []string {
	if len(topics) == 0 {
		topics = []string{GeneralTopic}
	}

	assignment := make([]string, 0, numQuestions)
	for i := 0; i < numQuestions; i++ {
		assignment = append(assignment, topics[i%len(topics)])
	}
	g.shuffle(len(assignment), func(i, j int) {
		assignment[i], assignment[j] = assignment[j], assignment[i]
	})
	return assignment
}

func normalizeQuestionText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
