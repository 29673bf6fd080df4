package main

import (
	"roomhub/internal/bookings/handler"
	"roomhub/internal/bookings/repository"
	"roomhub/internal/bookings/service"
	"roomhub/internal/bookings/validator"
	roomsrepo "roomhub/internal/rooms/repository"
	"roomhub/pkg/app"
	"roomhub/pkg/cache"
	"roomhub/pkg/config"
	"roomhub/pkg/kafka"
	kafka_config "roomhub/pkg/kafka/config"
	"roomhub/pkg/mailer"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")

	serverApp := app.NewApplication(cfg)
	bookingService := initServices(cfg, serverApp)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Client.Redis, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewRoomLockRepository(cfg)
	userRepo := repository.NewMongoUserRepository(cfg)
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)
	bookingCache := cache.NewRedisCache(cfg.Client.Redis)

	mail := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})

	events := initEvents(cfg, serverApp)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		userRepo,
		roomRepo,
		bookingValidator,
		bookingCache,
		mail,
		events,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initEvents builds the lifecycle event publisher. Without brokers configured
// the service runs with the stream disabled rather than failing to start.
func initEvents(cfg *config.Config, serverApp *app.Application) *service.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking event stream disabled")
		return service.NewEventPublisher(nil, cfg.Log)
	}

	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	cfg.Log.Info("Booking event stream enabled", "topic", cfg.BookingEventsTopic)
	return service.NewEventPublisher(producer, cfg.Log)
}
