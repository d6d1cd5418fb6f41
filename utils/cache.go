// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"venueflow/config"

	"github.com/go-redis/redis/v8"
)

var (
	// StateCacheClient caches hot booking state in front of Mongo.
	StateCacheClient *redis.Client
	// ApprovalCacheClient backs the pending-draft list for the approval gate.
	ApprovalCacheClient *redis.Client
	// NLUContextClient stores per-conversation context for the NLU extractor.
	NLUContextClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// InitStateCache initializes the Redis client for booking-state caching.
func InitStateCache() {
	StateCacheClient = newRedisClient(config.AppConfig.RedisStateDB)
}

// GetStateCacheClient returns the booking-state cache client.
func GetStateCacheClient() *redis.Client {
	if StateCacheClient == nil {
		InitStateCache()
	}
	return StateCacheClient
}

// InitApprovalCache initializes the Redis client for the approval queue.
func InitApprovalCache() {
	ApprovalCacheClient = newRedisClient(config.AppConfig.RedisApprovalDB)
}

// GetApprovalCacheClient returns the approval queue client.
func GetApprovalCacheClient() *redis.Client {
	if ApprovalCacheClient == nil {
		InitApprovalCache()
	}
	return ApprovalCacheClient
}

// InitNLUContextCache initializes the Redis client for NLU conversation context.
func InitNLUContextCache() {
	NLUContextClient = newRedisClient(config.AppConfig.RedisNLUDB)
}

// GetNLUContextClient returns the NLU context client.
func GetNLUContextClient() *redis.Client {
	if NLUContextClient == nil {
		InitNLUContextCache()
	}
	return NLUContextClient
}

// InitRedis eagerly initializes all Redis clients at startup.
func InitRedis() {
	InitStateCache()
	InitApprovalCache()
	InitNLUContextCache()
}
