// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wrenchly/config"
	"wrenchly/cron"
	"wrenchly/database"
	availabilityRepoPkg "wrenchly/database/repository/availability"
	bookingRepoPkg "wrenchly/database/repository/booking"
	catalogRepoPkg "wrenchly/database/repository/catalog"
	mechanicRepoPkg "wrenchly/database/repository/mechanic"
	userRepoPkg "wrenchly/database/repository/user"
	vehicleRepoPkg "wrenchly/database/repository/vehicle"
	workorderRepoPkg "wrenchly/database/repository/workorder"
	"wrenchly/handlers"
	"wrenchly/routes"
	availabilitySvc "wrenchly/services/availability"
	bookingSvc "wrenchly/services/booking"
	"wrenchly/services/calendar"
	"wrenchly/services/catalog"
	"wrenchly/services/customer"
	"wrenchly/services/mechanic"
	"wrenchly/services/notification"
	"wrenchly/services/storage"
	"wrenchly/services/vehicle"
	"wrenchly/services/workorder"
	"wrenchly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger()
	defer logger.Sync()

	ctx := context.Background()

	mongoClient, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(mongoClient)
	db := mongoClient.Database(cfg.DatabaseName)

	cacheClient, err := utils.NewRedisClient(cfg, cfg.RedisCacheDB)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis cache: %v", err)
	}
	defer cacheClient.Close()

	authClient, err := utils.FirebaseAuth(ctx, cfg.GoogleCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize identity provider: %v", err)
	}

	var calendarSvc calendar.Service
	if cfg.GoogleCredentialsFile != "" {
		gc, err := calendar.NewGoogleCalendar(ctx, cfg.GoogleCredentialsFile, cfg.CalendarID)
		if err != nil {
			logger.Warn("calendar sync disabled", zap.Error(err))
		} else {
			calendarSvc = gc
		}
	}

	storageSvc, err := storage.NewCloudinaryStorage(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := notification.NewAsynqDispatcher(asynqClient, logger)

	// Repositories.
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo(db)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo(db)
	mechanicRepo := mechanicRepoPkg.NewMongoMechanicRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo(db)
	workorderRepo := workorderRepoPkg.NewMongoWorkOrderRepo(db)

	// Services.
	dayCache := availabilitySvc.NewCache(cacheClient)
	area := utils.NewServiceArea(cfg.ServiceAreaZips)

	seeder := &availabilitySvc.Seeder{
		Mechanics:    mechanicRepo,
		Availability: availabilityRepo,
		Granularity:  cfg.SlotGranularityMin,
		Logger:       logger,
	}
	availabilityQuery := &availabilitySvc.Query{
		Repo:        availabilityRepo,
		Cache:       dayCache,
		Granularity: cfg.SlotGranularityMin,
	}

	bookingService := &bookingSvc.DefaultBookingService{
		Catalog:          catalogRepo,
		Mechanics:        mechanicRepo,
		Availability:     availabilityRepo,
		Bookings:         bookingRepo,
		Calendar:         calendarSvc,
		Notifier:         dispatcher,
		Cache:            dayCache,
		Area:             area,
		Logger:           logger,
		AllowDynamicDays: cfg.DynamicDays,
		GranularityMin:   cfg.SlotGranularityMin,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:        catalogRepo,
		Cache:       catalog.NewRedisListCache(cacheClient),
		Granularity: cfg.SlotGranularityMin,
	}
	mechanicService := &mechanic.DefaultMechanicService{Repo: mechanicRepo}
	customerService := &customer.DefaultCustomerService{
		Repo:     userRepo,
		Auth:     authClient,
		Notifier: dispatcher,
		Logger:   logger,
	}
	vehicleService := &vehicle.DefaultVehicleService{Repo: vehicleRepo}
	workorderService := &workorder.DefaultWorkOrderService{
		Repo:    workorderRepo,
		Storage: storageSvc,
		Logger:  logger,
	}

	// Handlers.
	hb := &handlers.HandlerBundle{
		Bookings:     &handlers.BookingHandler{Svc: bookingService},
		Availability: &handlers.AvailabilityHandler{Query: availabilityQuery, Seeder: seeder},
		Catalog:      &handlers.CatalogHandler{Svc: catalogService},
		Mechanics:    &handlers.MechanicHandler{Svc: mechanicService},
		Customers:    &handlers.CustomerHandler{Svc: customerService},
		Vehicles:     &handlers.VehicleHandler{Svc: vehicleService},
		WorkOrders:   &handlers.WorkOrderHandler{Svc: workorderService},
		Admin:        &handlers.AdminHandler{Auth: authClient, Logger: logger},
	}

	router := routes.NewRouter(hb, authClient, cfg)

	// Background workers.
	workerSrv, workerMux := cron.NewNotificationWorker(cfg, &cron.LogSender{Logger: logger}, logger)
	go func() {
		if err := workerSrv.Run(workerMux); err != nil {
			logger.Sugar().Fatalf("main: notification worker failed: %v", err)
		}
	}()

	scheduler, err := cron.StartSeedScheduler(cfg.SeedCronSpec, cfg.AppPort, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start seed scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	scheduler.Stop()
	workerSrv.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}
