package quiz

import (
	"fmt"
	"sort"
)

// ScoreList is the wire format for persisted topic mastery: an ordered array
// of single-key topic→score objects, e.g. [{"Algebra": 5.0}, {"Geometry": 7.5}].
// The backend API exposes scores in exactly this shape.
type ScoreList []map[string]float64

// Validate rejects entries that are not single-key or whose score is outside
// [MasteryMin, MasteryMax].
func (l ScoreList) Validate() error {
	for i, entry := range l {
		if len(entry) != 1 {
			return fmt.Errorf("topic_scores[%d]: expected a single topic key, got %d", i, len(entry))
		}
		for topic, score := range entry {
			if topic == "" {
				return fmt.Errorf("topic_scores[%d]: empty topic name", i)
			}
			if score < MasteryMin || score > MasteryMax {
				return fmt.Errorf("topic_scores[%d]: score %v for %q out of range [%v, %v]", i, score, topic, MasteryMin, MasteryMax)
			}
		}
	}
	return nil
}

// ToMap flattens the list into a topic→score map. Later entries win on
// duplicate topics.
func (l ScoreList) ToMap() map[string]float64 {
	scores := make(map[string]float64, len(l))
	for _, entry := range l {
		for topic, score := range entry {
			scores[topic] = score
		}
	}
	return scores
}

// Topics returns topic names in list order.
func (l ScoreList) Topics() []string {
	topics := make([]string, 0, len(l))
	for _, entry := range l {
		for topic := range entry {
			topics = append(topics, topic)
		}
	}
	return topics
}

// Merge upserts scores into the list: topics already present keep their
// position with the new value, new topics are appended in sorted order for
// deterministic output.
func (l ScoreList) Merge(scores map[string]float64) ScoreList {
	merged := make(ScoreList, 0, len(l)+len(scores))
	seen := make(map[string]struct{}, len(l))

	for _, entry := range l {
		for topic, score := range entry {
			if updated, ok := scores[topic]; ok {
				score = updated
			}
			merged = append(merged, map[string]float64{topic: score})
			seen[topic] = struct{}{}
		}
	}

	added := make([]string, 0, len(scores))
	for topic := range scores {
		if _, ok := seen[topic]; !ok {
			added = append(added, topic)
		}
	}
	sort.Strings(added)
	for _, topic := range added {
		merged = append(merged, map[string]float64{topic: scores[topic]})
	}

	return merged
}

// ScoreListFromMap converts a topic→score map into the wire format with
// topics in sorted order.
func ScoreListFromMap(scores map[string]float64) ScoreList {
	topics := make([]string, 0, len(scores))
	for topic := range scores {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	list := make(ScoreList, 0, len(topics))
	for _, topic := range topics {
		list = append(list, map[string]float64{topic: scores[topic]})
	}
	return list
}
