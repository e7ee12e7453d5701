package judgment

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"slotboard/models"
	"slotboard/utils"
)

const judgmentKey = "judgment:entries"

// redisLog stores the judgment log as a Redis list so entries survive
// process restarts. RPUSH plus LTRIM keeps only the newest entries.
type redisLog struct {
	client *redis.Client
	limit  int64
}

// NewRedisLog constructs a Redis-backed judgment log.
func NewRedisLog(client *redis.Client) Log {
	return &redisLog{client: client, limit: utils.JudgmentLogLimit}
}

func (l *redisLog) Append(ctx context.Context, entry models.JudgmentEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, judgmentKey, data)
	pipe.LTrim(ctx, judgmentKey, -l.limit, -1)
	_, err = pipe.Exec(ctx)
	return err
}

func (l *redisLog) List(ctx context.Context) ([]models.JudgmentEntry, error) {
	raw, err := l.client.LRange(ctx, judgmentKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]models.JudgmentEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.JudgmentEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l *redisLog) Clear(ctx context.Context) (int, error) {
	n, err := l.client.LLen(ctx, judgmentKey).Result()
	if err != nil {
		return 0, err
	}
	if err := l.client.Del(ctx, judgmentKey).Err(); err != nil {
		return 0, err
	}
	return int(n), nil
}
