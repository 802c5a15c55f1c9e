package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/m04kA/PTM-BookingService/internal/config"
	"github.com/m04kA/PTM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PTM-BookingService/internal/infra/storage/jsonfile"
	"github.com/m04kA/PTM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PTM-BookingService/pkg/logger"
	"github.com/m04kA/PTM-BookingService/pkg/metrics"
	"github.com/m04kA/PTM-BookingService/pkg/txmanager"
)

// BookingStore общий контракт хранилищ записей
type BookingStore interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UpdateStatus(
		ctx context.Context,
		id int64,
		expected domain.BookingStatus,
		next domain.BookingStatus,
		updatedAt time.Time,
	) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// TxManager интерфейс для transaction manager (используется в usecases)
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage выбранное хранилище и всё, что к нему относится
type storage struct {
	bookings BookingStore
	tx       TxManager
	users    []domain.User // учётные записи из JSON документа
	close    func() error
}

// openStorage подключает хранилище по database.driver
// teachers нужен JSON хранилищу для записей старого формата
func openStorage(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	teachers jsonfile.TeacherResolver,
) (*storage, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return openPostgres(cfg, log, m)
	default:
		return openJSONFile(cfg, log, teachers)
	}
}

func openPostgres(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var executor txmanager.DBExecutor = db
	if m != nil {
		executor = dbmetrics.Wrap(db, m)
		if err := prometheus.Register(collectors.NewDBStatsCollector(db, cfg.Database.DBName)); err != nil {
			log.Warn("Failed to register connection pool metrics: %v", err)
		} else {
			log.Info("Database metrics collection started")
		}
	}

	return &storage{
		bookings: bookingRepo.NewRepository(executor),
		tx:       txmanager.NewTransactionManager(db),
		close:    db.Close,
	}, nil
}

func openJSONFile(cfg *config.Config, log *logger.Logger, teachers jsonfile.TeacherResolver) (*storage, error) {
	store, err := jsonfile.Open(cfg.Database.JSONPath, teachers)
	if err != nil {
		return nil, fmt.Errorf("open json store: %w", err)
	}

	if cfg.Database.JSONPath == "" {
		log.Warn("JSON store path is empty, bookings are kept in memory only")
	} else {
		log.Info("JSON store opened: %s", cfg.Database.JSONPath)
	}

	return &storage{
		bookings: store,
		tx:       txmanager.Nop{},
		users:    store.Users(),
		close:    func() error { return nil },
	}, nil
}
