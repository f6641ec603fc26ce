package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/billing/model/dto"
	bookingModel "lodge/internal/domains/booking/model"
	bookingRepo "lodge/internal/domains/booking/repository"
	paymentRepo "lodge/internal/domains/payment/repository"
	costModel "lodge/internal/domains/roomcost/model"
	costRepo "lodge/internal/domains/roomcost/repository"
	costService "lodge/internal/domains/roomcost/service"
	"lodge/shared/calendar"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

type Billing interface {
	Due(ctx context.Context, bookingID string, durationType string) (dto.DueResponse, error)
	DueList(ctx context.Context) (dto.DueListResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	paymentRepo paymentRepo.Payment
	costRepo    costRepo.RoomCost
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	bookingRepo bookingRepo.Booking,
	paymentRepo paymentRepo.Payment,
	costRepo costRepo.RoomCost,
	cfg *config.Config,
	otel otel.Otel,
) Billing {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		costRepo:    costRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

// Due prices a single booking and subtracts what it has paid so far.
// durationType may be empty, in which case the stay length decides the
// rate: stays longer than the configured threshold bill monthly. Overpaid
// bookings come back with a negative due.
func (s *serviceImpl) Due(ctx context.Context, bookingID string, durationType string) (res dto.DueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Due")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookingRepo.Get(ctx, filterByID(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		// nolint:wrapcheck
		return res, failure.NotFound(bookingModel.EntityName)
	}

	return s.dueFor(ctx, booking, durationType)
}

// DueList prices every booking that is not cancelled and keeps the ones
// still owing money. Bookings whose rate has no cost table entry are
// skipped rather than failing the whole list.
func (s *serviceImpl) DueList(ctx context.Context) (res dto.DueListResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DueList")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: bookingModel.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	bookings, err := s.bookingRepo.GetAll(ctx, params, filterNotCancelled())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for due list")

		return res, fmt.Errorf("failed to get bookings for due list: %w", err)
	}

	res.Items = []dto.DueResponse{}

	for _, booking := range bookings {
		due, err := s.dueFor(ctx, booking, "")
		if err != nil {
			if failure.GetCode(err) == http.StatusNotFound {
				continue
			}

			return res, err
		}

		if due.Due <= 0 {
			continue
		}

		res.Items = append(res.Items, due)
		res.Total += due.Due
	}

	return res, nil
}

func (s *serviceImpl) dueFor(ctx context.Context, booking bookingModel.Booking, durationType string) (res dto.DueResponse, err error) {
	nights := calendar.DaysBetween(booking.CheckInDate, booking.CheckOutDate)

	if durationType == "" {
		durationType = s.inferDurationType(nights)
	}

	cost, err := s.costRepo.Get(ctx, costService.FilterByCostKey(booking.BathroomType, durationType, booking.RoomType))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room cost")

		return res, fmt.Errorf("failed to get room cost: %w", err)
	}

	if cost.ID == "" {
		// nolint:wrapcheck
		return res, failure.NotFound(fmt.Sprintf(
			"room cost for %s/%s/%s", booking.BathroomType, durationType, booking.RoomType))
	}

	paid, err := s.paymentRepo.Total(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to total payments")

		return res, fmt.Errorf("failed to total payments: %w", err)
	}

	units := s.units(durationType, nights)
	expected := cost.Cost * int64(units)

	return dto.DueResponse{
		BookingID:    booking.ID,
		RoomNumber:   booking.RoomNumber,
		CustomerName: booking.CustomerName,
		CheckInDate:  booking.CheckInDate.Format(constant.CalendarDateFormat),
		CheckOutDate: booking.CheckOutDate.Format(constant.CalendarDateFormat),
		Status:       booking.Status,
		DurationType: durationType,
		Units:        units,
		UnitCost:     cost.Cost,
		ExpectedCost: expected,
		TotalPaid:    paid,
		Due:          expected - paid,
	}, nil
}

func (s *serviceImpl) inferDurationType(nights int) string {
	if nights > s.cfg.Billing.MonthlyThresholdDays {
		return costModel.DurationTypeMonthly
	}

	return costModel.DurationTypeDaily
}

// units converts a stay length into billable units. Monthly stays round
// up: any started month is charged in full.
func (s *serviceImpl) units(durationType string, nights int) int {
	if durationType == costModel.DurationTypeMonthly {
		daysPerMonth := s.cfg.Billing.DaysPerMonth
		return (nights + daysPerMonth - 1) / daysPerMonth
	}

	return nights
}

func filterByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func filterNotCancelled() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				ArgName:  "status_cancelled",
				Value:    bookingModel.StatusCancelled,
				Table:    bookingModel.TableName,
			},
		},
	}
}
