package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "gigbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultSessionTTL        = 5 * time.Minute
	DefaultSessionBackend    = SessionBackendMemory
	DefaultSessionCookieName = "gigbook_session"
	// Development-only key. Deployments must set SESSION_SEAL_KEY.
	DefaultSessionSealKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultBcryptCost = 10

	DefaultEventsTopic = "gigbook.events"

	DefaultStaticDir = "./public"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)
