package main

import (
	"context"
	"time"

	"roomhub/internal/rooms/handler"
	"roomhub/internal/rooms/repository"
	"roomhub/internal/rooms/service"
	"roomhub/internal/rooms/validator"
	"roomhub/pkg/app"
	"roomhub/pkg/config"
)

const ServiceName = "rooms"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Rooms service")

	roomService := initServices(cfg)
	seedRooms(cfg, roomService)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewRoomHandler(roomService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.RoomService {
	roomValidator := validator.NewRoomValidator(cfg.Log)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	roomService := service.NewRoomService(roomRepo, roomValidator, cfg)

	cfg.Log.Info("Room service initialized", "database", cfg.MongoDatabaseName)
	return roomService
}

func seedRooms(cfg *config.Config, roomService service.RoomService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := roomService.InitData(ctx); err != nil {
		cfg.Log.Fatal("Failed to seed meeting rooms", "error", err)
	}
}
