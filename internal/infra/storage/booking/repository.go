package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PTM-BookingService/internal/domain"
	"github.com/m04kA/PTM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PTM-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PTM-BookingService/pkg/txmanager"
)

const (
	bookingsTable = "bookings"

	// pgUniqueViolation код ошибки PostgreSQL unique_violation
	pgUniqueViolation = "23505"

	// activeSlotIndex частичный уникальный индекс (teacher_id, booking_date, slot_start) WHERE status <> 'CANCELLED'
	activeSlotIndex = "bookings_active_slot_uniq"
)

var bookingColumns = []string{
	"id",
	"teacher_id",
	"booking_date",
	"slot_start",
	"slot_end",
	"status",
	"parent_name",
	"student_name",
	"student_class",
	"phone",
	"email",
	"comment",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Уникальность активного слота гарантирует частичный индекс: при гонке двух вставок
// вторая получит unique_violation, который превращается в ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"teacher_id",
			"booking_date",
			"slot_start",
			"slot_end",
			"status",
			"parent_name",
			"student_name",
			"student_class",
			"phone",
			"email",
			"comment",
			"created_at",
			"updated_at",
		).
		Values(
			booking.TeacherID,
			booking.Date,
			booking.Slot.Start,
			booking.Slot.End,
			booking.Status,
			booking.ParentName,
			booking.StudentName,
			booking.StudentClass,
			booking.Phone,
			booking.Email,
			booking.Comment,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией
//
// Примеры использования:
//
// 1. Все бронирования (админка):
//    filter := domain.BookingFilter{}
//
// 2. Занятые слоты учителя на дату:
//    filter := domain.BookingFilter{TeacherID: &id, Date: &date, ExcludeCancelled: true}
//
// 3. Только подтверждённые:
//    status := domain.StatusConfirmed
//    filter := domain.BookingFilter{Status: &status}
//
// Внутри транзакции выборка по учителю и дате блокирует найденные строки (FOR UPDATE)
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From(bookingsTable)

	if filter.TeacherID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"teacher_id": *filter.TeacherID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": domain.DateOnly(*filter.Date)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ExcludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	lockRows := txmanager.IsInTransaction(ctx) && filter.TeacherID != nil && filter.Date != nil
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("slot_start ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "slot_start ASC", "id ASC")
	}
	if lockRows {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus меняет статус, только если текущий статус равен expected (compare-and-set)
// Возвращает ErrBookingNotFound, если записи нет, и ErrStatusMismatch, если статус уже другой
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	expected domain.BookingStatus,
	next domain.BookingStatus,
	updatedAt time.Time,
) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", next).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id, "status": expected}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Различаем "нет записи" и "статус уже поменяли"
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStatusMismatch
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.TeacherID,
		&booking.Date,
		&booking.Slot.Start,
		&booking.Slot.End,
		&booking.Status,
		&booking.ParentName,
		&booking.StudentName,
		&booking.StudentClass,
		&booking.Phone,
		&booking.Email,
		&booking.Comment,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOnly(booking.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение индекса активного слота
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && (pqErr.Constraint == "" || pqErr.Constraint == activeSlotIndex)
}
