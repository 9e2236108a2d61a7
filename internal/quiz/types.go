package quiz

// Fallback topic used when a document has no curated topics.
const GeneralTopic = "general"

// Question is a single multiple-choice question. Immutable once accepted by
// the orchestrator; Topic is always the topic the question was generated for,
// never the model's echo.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
	Topic   string   `json:"topic"`
}

// TopicTally counts per-topic results over answered questions.
type TopicTally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Result is the outcome of grading one completed quiz. Transient: only the
// derived mastery deltas and question history are persisted.
type Result struct {
	Score          int                   `json:"score"`
	TopicBreakdown map[string]TopicTally `json:"topic_breakdown"`
}
