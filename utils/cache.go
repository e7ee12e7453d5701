// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"slotboard/config"
)

// JudgmentCacheClient is the dedicated client backing the judgment log.
var JudgmentCacheClient *redis.Client

// InitJudgmentCache initializes the Redis client for the judgment log
// (using DB from AppConfig).
func InitJudgmentCache() {
	JudgmentCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJudgmentDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := JudgmentCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Judgment Cache): %v", err)
	}
}

// GetJudgmentCacheClient returns the Redis client for the judgment log.
func GetJudgmentCacheClient() *redis.Client {
	if JudgmentCacheClient == nil {
		InitJudgmentCache()
	}
	return JudgmentCacheClient
}
