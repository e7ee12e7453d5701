package cron

import (
	"context"
	"errors"
	"log"
	"time"

	"slotboard/config"
	"slotboard/services/ingest"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeMailSync = "sync:mail"

// InitMailSyncWorker runs the async worker in background and enqueues a
// mail sync task on the configured interval. Duplicate enqueues collapse
// through the task ID while a run is still pending.
func InitMailSyncWorker(mailSvc *ingest.MailSyncService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMailSync, handleMailSyncTask(mailSvc))

	go monitorRedisConnection()
	go scheduleMailSync(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[MailSyncWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailSyncWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MailSyncWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleMailSyncTask(mailSvc *ingest.MailSyncService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		summary, err := mailSvc.Run(ctx)
		if err != nil {
			log.Printf("[MailSyncHandler] ❌ Sync run failed: %v", err)
			return err
		}
		log.Printf("[MailSyncHandler] ⏰ Sync complete: %d found, %d added, %d cancelled, %d skipped",
			summary.TotalFound, summary.Added, summary.Cancelled, summary.Skipped)
		return nil
	}
}

// scheduleMailSync enqueues one sync task per interval tick.
func scheduleMailSync(redisOpts asynq.RedisClientOpt) {
	interval := time.Duration(config.AppConfig.SyncIntervalMin) * time.Minute
	if interval <= 0 {
		log.Println("[MailSyncWorker] ⚠️ Periodic sync disabled (SYNC_INTERVAL_MIN <= 0)")
		return
	}

	client := asynq.NewClient(redisOpts)
	defer client.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeMailSync, nil)
		if _, err := client.Enqueue(task, asynq.TaskID("mail-sync"), asynq.MaxRetry(2)); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) {
				continue
			}
			log.Printf("[MailSyncWorker] ❌ Failed to enqueue sync task: %v", err)
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[MailSyncWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
