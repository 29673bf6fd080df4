package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomhub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultPort = "8080"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultUrgeCooldown is the urge-reminder cooling window: one reminder
	// email per booking per window.
	DefaultUrgeCooldown = 30 * time.Minute

	// DefaultRoomLockTTL bounds how long a crashed request can hold the
	// per-room creation lock.
	DefaultRoomLockTTL = 10 * time.Second

	DefaultPaginationLimit = 100
	DefaultPageSize        = 10

	DefaultSMTPHost = "localhost"
	DefaultSMTPPort = "25"
	DefaultMailFrom = "noreply@roomhub.local"

	DefaultBookingEventsTopic = "roomhub.booking-events"
)
