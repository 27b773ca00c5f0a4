package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/seatwise/floor-service/config"
	"github.com/seatwise/floor-service/internal/consumer"
	"github.com/seatwise/floor-service/internal/handler"
	"github.com/seatwise/floor-service/internal/middleware"
	"github.com/seatwise/floor-service/internal/monitor"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/seatwise/floor-service/internal/service"
	"github.com/seatwise/floor-service/pkg/database"
	"github.com/seatwise/floor-service/pkg/rabbitmq"
	"github.com/seatwise/floor-service/pkg/ws"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: occupancy snapshots + booking/waitlist events out
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// RabbitMQ consumer: booking deltas pushed by external channels in
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	deltaConsumer := consumer.NewBookingDeltaConsumer(db)
	deltaConsumer.Start(msgs)

	// Repositories
	tableRepo := repository.NewTableRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	comboRepo := repository.NewCombinationRepository(db)

	// Services
	floorSvc := service.NewFloorService(tableRepo, bookingRepo)
	bookingSvc := service.NewBookingService(bookingRepo, tableRepo, publisher)
	waitlistSvc := service.NewWaitlistService(waitlistRepo, tableRepo, bookingRepo, floorSvc, publisher)
	comboSvc := service.NewCombinationService(comboRepo, tableRepo)

	// Refresh loop: recompute occupancy + sweep waitlist every interval
	floorMonitor := monitor.NewFloorMonitor(tableRepo, floorSvc, waitlistSvc, publisher, cfg.RefreshInterval)
	floorMonitor.Start()
	defer floorMonitor.Stop()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":     "ok",
			"service":    "floor-service",
			"ws_clients": ws.ClientCount(),
		})
	})

	handler.NewFloorHandler(floorSvc, tableRepo, comboRepo).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewWaitlistHandler(waitlistSvc, floorSvc).RegisterRoutes(e)
	handler.NewCombinationHandler(comboSvc).RegisterRoutes(e)

	log.Printf("Floor Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
