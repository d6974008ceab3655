package main

import (
	"context"

	"github.com/joho/godotenv"

	"gigbook/internal/auth"
	bookingshandler "gigbook/internal/bookings/handler"
	bookingsrepository "gigbook/internal/bookings/repository"
	bookingsservice "gigbook/internal/bookings/service"
	bookingsvalidator "gigbook/internal/bookings/validator"
	"gigbook/internal/static"
	usershandler "gigbook/internal/users/handler"
	usersrepository "gigbook/internal/users/repository"
	usersservice "gigbook/internal/users/service"
	usersvalidator "gigbook/internal/users/validator"
	"gigbook/pkg/app"
	"gigbook/pkg/config"
	"gigbook/pkg/events"
	"gigbook/pkg/sealer"
	"gigbook/pkg/session"
)

const ServiceName = "gigbook"

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting gigbook service")

	cfg.SetMongo()

	publisher := initPublisher(cfg)
	store := initSessionStore(cfg)
	sessions := initSessions(cfg, store)

	userService, bookingService := initServices(cfg, publisher)
	guard := auth.NewGuard(userService, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		sessions,
		store,
		publisher,
		static.NewHandler(cfg.StaticDir, cfg.Log),
		auth.NewAuthHandler(userService, sessions, guard, cfg.Log),
		usershandler.NewUserHandler(userService, guard, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, guard, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (usersservice.UserService, bookingsservice.BookingService) {
	userRepo := usersrepository.NewMongoUserRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure user indexes", "error", err)
	}
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}

	userService := usersservice.NewUserService(userRepo, usersvalidator.NewUserValidator(cfg.Log), publisher, cfg)
	bookingService := bookingsservice.NewBookingService(bookingRepo, bookingsvalidator.NewBookingValidator(cfg.Log), publisher, cfg)

	userCount, _ := userRepo.Count(ctx)
	bookingCount, _ := bookingRepo.Count(ctx)
	cfg.Log.Info("Domain services initialized",
		"database", cfg.MongoDatabaseName,
		"users", userCount,
		"bookings", bookingCount,
	)
	return userService, bookingService
}

func initSessionStore(cfg *config.Config) session.Store {
	if cfg.SessionBackend == config.SessionBackendRedis {
		store, err := session.NewRedisStore(context.Background(), session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			cfg.Log.Fatal("Failed to connect session store", "error", err)
		}
		cfg.Log.Info("Session store initialized", "backend", "redis", "addr", cfg.RedisAddr)
		return store
	}

	cfg.Log.Info("Session store initialized", "backend", "memory")
	return session.NewMemoryStore()
}

func initSessions(cfg *config.Config, store session.Store) *auth.Sessions {
	s, err := sealer.New(cfg.SessionSealKey)
	if err != nil {
		cfg.Log.Fatal("Invalid session seal key", "error", err)
	}
	return auth.NewSessions(store, s, cfg.SessionCookieName, cfg.SessionTTL, cfg.Log)
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Event publishing disabled (no Kafka brokers configured)")
		return events.NoopPublisher{}
	}
	return events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic, cfg.Log)
}
