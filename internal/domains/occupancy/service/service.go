package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lodge/infras/otel"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepo "lodge/internal/domains/booking/repository"
	bookingService "lodge/internal/domains/booking/service"
	"lodge/internal/domains/occupancy/model"
	"lodge/internal/domains/occupancy/model/dto"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared/calendar"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

type Occupancy interface {
	Grid(ctx context.Context, start, end time.Time) (dto.GridResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, otel otel.Otel) Occupancy {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

// Grid builds the room-by-day occupancy matrix for the inclusive window
// [start, end]. The grid is derived from storage on every call rather than
// cached; a stale matrix is worse than the extra read.
func (s *serviceImpl) Grid(ctx context.Context, start, end time.Time) (res dto.GridResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Grid")
	defer scope.End()
	defer scope.TraceIfError(err)

	start = calendar.Date(start)
	end = calendar.Date(end)

	if end.Before(start) {
		// nolint:wrapcheck
		return res, failure.BadRequestFromString("end date must not be before start date")
	}

	rooms, err := s.roomRepo.GetAll(ctx, roomOrdering(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms for occupancy grid")

		return res, fmt.Errorf("failed to get rooms for occupancy grid: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, windowFilter(start, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for occupancy grid")

		return res, fmt.Errorf("failed to get bookings for occupancy grid: %w", err)
	}

	res.FromGrid(model.Build(rooms, bookings, start, end))

	return res, nil
}

func roomOrdering() gDto.QueryParams {
	return gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}
}

// windowFilter keeps the non-cancelled bookings that occupy at least one
// day of the inclusive window [start, end].
func windowFilter(start, end time.Time) gDto.FilterGroup {
	filter := bookingService.WindowFilter(start, end)

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    bookingModel.FieldStatus,
		Operator: gDto.FilterOperatorNotEq,
		ArgName:  "status_cancelled",
		Value:    bookingModel.StatusCancelled,
		Table:    bookingModel.TableName,
	})

	return filter
}
