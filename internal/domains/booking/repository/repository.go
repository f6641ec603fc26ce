package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	WithTx(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error
	LockRoomTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) error
	FindConflictTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	cfg  *config.Config
	otel otel.Otel
}

func New(db *postgres.Connection, cfg *config.Config, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		cfg:        cfg,
		otel:       otel,
	}
}

// LockRoomTx serializes booking writes per room. It takes a transaction-
// scoped advisory lock keyed on the room id, so writes to different rooms
// never contend. The wait is bounded by the configured lock timeout; the
// lock is released on commit or rollback.
func (repo *repositoryImpl) LockRoomTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.LockRoomTx")
	defer scope.End()

	timeoutMS := repo.cfg.DB.Postgres.LockTimeoutMS
	if _, err := sqltx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeoutMS)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to set lock timeout: %w", err)
	}

	if _, err := sqltx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", roomID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock room %s: %w", roomID, err)
	}

	return nil
}

// FindConflictTx returns a non-cancelled booking on the room whose stay
// intersects [checkIn, checkOut), or the zero model when the room is free.
// Two half-open ranges intersect iff each starts before the other ends.
// Must run under LockRoomTx so the answer stays true until commit.
func (repo *repositoryImpl) FindConflictTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindConflictTx")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = :room_id AND %s != :status_cancelled AND %s < :check_out_date AND %s > :check_in_date AND %s != :exclude_id LIMIT 1",
		model.FieldID, model.FieldRoomID, model.FieldCustomerID, model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldStatus,
		model.TableName,
		model.FieldRoomID,
		model.FieldStatus,
		model.FieldCheckInDate,
		model.FieldCheckOutDate,
		model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"room_id":          roomID,
		"status_cancelled": model.StatusCancelled,
		"check_in_date":    checkIn,
		"check_out_date":   checkOut,
		"exclude_id":       excludeID,
	}

	var clash model.Booking

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return clash, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &clash, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return clash, fmt.Errorf("failed to scan for conflicting bookings: %w", err)
	}

	return clash, nil
}
