package quiz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTopicCacheTTL = time.Hour

// TopicCache memoizes extracted topics in Redis so re-opening a document does
// not re-bill the model for the same content.
type TopicCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTopicCache(client *redis.Client, ttl time.Duration) *TopicCache {
	if ttl <= 0 {
		ttl = defaultTopicCacheTTL
	}
	return &TopicCache{client: client, ttl: ttl}
}

func (c *TopicCache) key(textContent string, knownTopics []string) string {
	h := sha256.New()
	h.Write([]byte(textContent))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(knownTopics, "\n")))
	return "topics:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns cached topics, or nil on miss or any Redis error.
func (c *TopicCache) Get(ctx context.Context, textContent string, knownTopics []string) []string {
	data, err := c.client.Get(ctx, c.key(textContent, knownTopics)).Bytes()
	if err != nil {
		return nil
	}
	var topics []string
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil
	}
	return topics
}

func (c *TopicCache) Set(ctx context.Context, textContent string, knownTopics, topics []string) error {
	data, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(textContent, knownTopics), data, c.ttl).Err()
}
