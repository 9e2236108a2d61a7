package quiz

// Mastery adjustment per answered question, clamped to [MasteryMin, MasteryMax]
// after every update.
const (
	MasteryDelta = 0.5
	MasteryMin   = 0.0
	MasteryMax   = 10.0
)

// ScoreQuiz grades a completed quiz. answers maps question index to the
// chosen option; grading is strict string equality. The topic breakdown
// counts only answered indices.
func ScoreQuiz(questions []Question, answers map[int]string) Result {
	result := Result{TopicBreakdown: make(map[string]TopicTally)}

	for i, q := range questions {
		chosen, answered := answers[i]
		if !answered {
			continue
		}

		tally := result.TopicBreakdown[q.Topic]
		tally.Total++
		if chosen == q.Answer {
			tally.Correct++
			result.Score++
		}
		result.TopicBreakdown[q.Topic] = tally
	}

	return result
}

// ApplyMasteryDelta returns a copy of current with per-topic mastery adjusted
// for each answered question: +MasteryDelta when correct, -MasteryDelta when
// incorrect, clamped after every update. Topics not yet tracked start at 0.
// Unanswered questions leave mastery untouched. Pure function of its inputs.
func ApplyMasteryDelta(current map[string]float64, questions []Question, answers map[int]string) map[string]float64 {
	updated := make(map[string]float64, len(current)+len(questions))
	for topic, score := range current {
		updated[topic] = score
	}

	for i, q := range questions {
		chosen, answered := answers[i]
		if !answered {
			continue
		}

		score := updated[q.Topic]
		if chosen == q.Answer {
			score += MasteryDelta
		} else {
			score -= MasteryDelta
		}
		updated[q.Topic] = clampMastery(score)
	}

	return updated
}

func clampMastery(score float64) float64 {
	if score < MasteryMin {
		return MasteryMin
	}
	if score > MasteryMax {
		return MasteryMax
	}
	return score
}
