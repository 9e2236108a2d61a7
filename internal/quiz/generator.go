package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/docquiz/docquiz/internal/llm"
)

// Generator produces topics and questions from document text via the LLM.
// All parse failures are swallowed: a bad model response yields fewer topics
// or fewer questions, never an error surfaced to the caller.
type Generator struct {
	llm     llm.Completer
	logger  zerolog.Logger
	shuffle func(n int, swap func(i, j int))
}

func NewGenerator(completer llm.Completer, logger zerolog.Logger) *Generator {
	return &Generator{
		llm:     completer,
		logger:  logger.With().Str("component", "quiz_generator").Logger(),
		shuffle: rand.Shuffle,
	}
}

// ExtractTopics asks the model for 3-8 topic labels, preserving any relevant
// knownTopics verbatim. Returns an empty slice on any transport or parse
// failure; the caller treats that as "no topics available".
func (g *Generator) ExtractTopics(ctx context.Context, textContent string, knownTopics []string) []string {
	raw, err := g.llm.Complete(ctx, topicExtractionPrompt(textContent, knownTopics))
	if err != nil {
		g.logger.Warn().Err(err).Msg("topic extraction call failed")
		return nil
	}

	var payload topicsPayload
	if err := decodeValidated(raw, topicsSchema, &payload); err != nil {
		g.logger.Warn().Err(err).Msg("topic extraction response rejected")
		return nil
	}

	topics := make([]string, 0, len(payload.Topics))
	for _, t := range payload.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// GenerateOne requests a single question for topic, excluding prior question
// texts via the prompt. Returns nil on any failure. Novelty beyond what the
// exclusion list achieves is the caller's responsibility.
func (g *Generator) GenerateOne(ctx context.Context, textContent, topic string, excluded []string) *Question {
	raw, err := g.llm.Complete(ctx, questionPrompt(textContent, topic, excluded))
	if err != nil {
		g.logger.Warn().Err(err).Str("topic", topic).Msg("question generation call failed")
		return nil
	}

	var payload questionPayload
	if err := decodeValidated(raw, questionSchema, &payload); err != nil {
		g.logger.Warn().Err(err).Str("topic", topic).Msg("question response rejected")
		return nil
	}

	q := &Question{
		Text:    strings.TrimSpace(payload.Question),
		Options: payload.Options,
		Answer:  payload.Answer,
		Topic:   topic,
	}
	if !answerInOptions(q) {
		g.logger.Warn().Str("topic", topic).Msg("answer not among options, discarding")
		return nil
	}
	return q
}

// GenerateTitle produces a short document title from the content. Falls back
// to a timestamp title on failure so document creation never blocks on the
// model.
func (g *Generator) GenerateTitle(ctx context.Context, textContent string) string {
	raw, err := g.llm.Complete(ctx, titlePrompt(textContent))
	if err != nil {
		g.logger.Warn().Err(err).Msg("title generation failed")
		return fallbackTitle()
	}

	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	if title == "" {
		return fallbackTitle()
	}
	return title
}

func fallbackTitle() string {
	return fmt.Sprintf("Document %s", time.Now().UTC().Format("2006-01-02 15:04:05"))
}

func answerInOptions(q *Question) bool {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}
