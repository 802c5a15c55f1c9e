package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	createBookingHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/delete_booking"
	exportBookingsHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/get_booking"
	getStatsHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/get_stats"
	listBookingsHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/list_bookings"
	listTeachersHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/list_teachers"
	loginHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/login"
	updateBookingStatusHandler "github.com/m04kA/PTM-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/PTM-BookingService/internal/config"
	teacherRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/teacher"
	userRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/user"
	"github.com/m04kA/PTM-BookingService/internal/integrations/events"
	authService "github.com/m04kA/PTM-BookingService/internal/service/auth"
	bookingsService "github.com/m04kA/PTM-BookingService/internal/service/bookings"
	teachersService "github.com/m04kA/PTM-BookingService/internal/service/teachers"
	createBookingUC "github.com/m04kA/PTM-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PTM-BookingService/internal/usecase/get_available_slots"
	updateBookingStatusUC "github.com/m04kA/PTM-BookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/PTM-BookingService/pkg/keylock"
	"github.com/m04kA/PTM-BookingService/pkg/logger"
	"github.com/m04kA/PTM-BookingService/pkg/metrics"
)

// eventPublisher общий интерфейс AMQP и no-op публикаторов
type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// .env не обязателен: переменные окружения могут прийти из оркестратора
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PTM-BookingService...")
	log.Info("Configuration loaded from %s (driver=%s)", *configPath, cfg.Database.Driver)

	schedule, err := cfg.Schedule()
	if err != nil {
		log.Fatal("Invalid slot schedule: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Справочник учителей
	teachers, err := teacherRepo.NewRepository(cfg.TeacherDirectory())
	if err != nil {
		log.Fatal("Invalid teacher directory: %v", err)
	}
	log.Info("Teacher directory loaded: %d teachers", len(cfg.TeacherDirectory()))

	// Подключаем хранилище
	store, err := openStorage(cfg, log, metricsCollector, teachers)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error("Failed to close storage: %v", err)
		}
	}()

	users := userRepo.NewRepository(store.users...)
	if admin, ok := cfg.AdminUser(); ok {
		users.Add(admin)
	} else if len(store.users) == 0 {
		log.Warn("No admin credentials configured: admin routes will reject every request")
	}

	// Публикация событий
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect events publisher: %v", err)
		}
		publisher = amqpPublisher
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close events publisher: %v", err)
		}
	}()

	storeTimeout := cfg.StoreTimeout()

	// Инициализируем сервисы
	authSvc := authService.NewService(users, log)
	bookingSvc := bookingsService.NewService(store.bookings, teachers, publisher, storeTimeout, log)
	teacherSvc := teachersService.NewService(teachers, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.bookings,
		teachers,
		schedule,
		storeTimeout,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		getAvailableSlotsUseCase,
		teachers,
		store.tx,
		keylock.New(),
		publisher,
		metricsCollector,
		schedule,
		storeTimeout,
		log,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		store.bookings,
		publisher,
		metricsCollector,
		storeTimeout,
		log,
	)

	// Инициализируем handlers
	listTeachers := listTeachersHandler.NewHandler(teacherSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	login := loginHandler.NewHandler(authSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getStats := getStatsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	opts := routerOptions{log: log, auth: authSvc}
	if cfg.Metrics.Enabled {
		opts.metrics = metricsCollector
		opts.metricsPath = cfg.Metrics.Path
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r := newRouter(routeHandlers{
		ListTeachers:        listTeachers.Handle,
		GetAvailableSlots:   getAvailableSlots.Handle,
		CreateBooking:       createBooking.Handle,
		Login:               login.Handle,
		ListBookings:        listBookings.Handle,
		ExportBookings:      exportBookings.Handle,
		GetBooking:          getBooking.Handle,
		UpdateBookingStatus: updateBookingStatus.Handle,
		DeleteBooking:       deleteBooking.Handle,
		GetStats:            getStats.Handle,
	}, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
