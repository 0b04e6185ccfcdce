package store

import (
	"context"
	"log"

	"snapurl_admin/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// RDB holds the gateway's client-state Redis connection (sealed tokens,
// theme preferences, realtime snapshot cache).
var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
	}
}
