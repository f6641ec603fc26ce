package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	customerModel "lodge/internal/domains/customer/model"
	customerRepo "lodge/internal/domains/customer/repository"
	paymentModel "lodge/internal/domains/payment/model"
	paymentRepo "lodge/internal/domains/payment/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/calendar"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
	CacheCountBooking  = "booking:count"
)

const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Arrivals(ctx context.Context, date time.Time) (dto.GetBookingsResponse, error)
	Departures(ctx context.Context, date time.Time) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	paymentRepo  paymentRepo.Payment
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	kafka        kafka.Client
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	paymentRepo paymentRepo.Payment,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		kafka:        kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := req.ToModel(constant.SystemUser)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, err
	}

	if err = s.checkReferences(ctx, booking.RoomID, booking.CustomerID); err != nil {
		return res, err
	}

	// The conflict scan and the insert must be one atomic unit per room, or
	// two concurrent requests could both see the room as free.
	err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.repo.LockRoomTx(ctx, sqltx, booking.RoomID); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		clash, err := s.repo.FindConflictTx(ctx, sqltx, booking.RoomID, booking.CheckInDate, booking.CheckOutDate, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to scan for conflicts: %w", err)
		}

		if clash.ID != constant.Empty {
			return conflictFailure(clash)
		}

		if err := s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	created, err := s.repo.Get(ctx, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking after create")

		return res, fmt.Errorf("failed to get booking after create: %w", err)
	}

	s.invalidateListCaches(ctx)
	s.publishEvent(ctx, EventBookingCreated, booking.ID)

	scope.AddEvent("Booking created on room " + booking.RoomID)

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	payments, err := s.paymentRepo.GetAll(ctx, paymentOrdering(), filterPaymentsByBooking(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payments")

		return res, fmt.Errorf("failed to get booking payments: %w", err)
	}

	res.FromModel(booking)
	res.Payments = make([]dto.PaymentEntry, len(payments))

	for i, payment := range payments {
		res.Payments[i] = dto.PaymentEntry{
			ID:     payment.ID,
			Amount: payment.Amount,
			Mode:   payment.Mode,
			PaidAt: timezone.Format(payment.PaidAt, constant.DateFormat),
		}
		res.TotalPaid += payment.Amount
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	target, err := applyEdit(current, req)
	if err != nil {
		return res, err
	}

	if target.RoomID != current.RoomID || target.CustomerID != current.CustomerID {
		if err = s.checkReferences(ctx, target.RoomID, target.CustomerID); err != nil {
			return res, err
		}
	}

	updatedFields := shared.TransformFields(req, constant.SystemUser)
	if req.CheckInDate != constant.Empty {
		updatedFields[model.FieldCheckInDate] = target.CheckInDate
	}

	if req.CheckOutDate != constant.Empty {
		updatedFields[model.FieldCheckOutDate] = target.CheckOutDate
	}

	err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.repo.LockRoomTx(ctx, sqltx, target.RoomID); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		// A booking being cancelled releases the room, so it cannot clash.
		if target.Status != model.StatusCancelled {
			clash, err := s.repo.FindConflictTx(ctx, sqltx, target.RoomID, target.CheckInDate, target.CheckOutDate, id)
			if err != nil {
				return fmt.Errorf("failed to scan for conflicts: %w", err)
			}

			if clash.ID != constant.Empty {
				return conflictFailure(clash)
			}
		}

		if err := s.repo.UpdateTx(ctx, sqltx, updatedFields, filter); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, err
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking after update")

		return res, fmt.Errorf("failed to get booking after update: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)
	s.publishEvent(ctx, EventBookingUpdated, id)

	res.FromModel(updated)

	return res, nil
}

// Delete removes the booking and every payment it owns; neither survives.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		if err := s.paymentRepo.DeleteTx(ctx, sqltx, filterPaymentsByBooking(id)); err != nil {
			return fmt.Errorf("failed to delete booking payments: %w", err)
		}

		if err := s.repo.DeleteTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return err
	}

	s.invalidateBookingCaches(ctx, id)
	s.publishEvent(ctx, EventBookingDeleted, id)

	return nil
}

func (s *serviceImpl) Arrivals(ctx context.Context, date time.Time) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Arrivals")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.onDate(ctx, model.FieldCheckInDate, date)
}

func (s *serviceImpl) Departures(ctx context.Context, date time.Time) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Departures")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.onDate(ctx, model.FieldCheckOutDate, date)
}

func (s *serviceImpl) onDate(ctx context.Context, dateField string, date time.Time) (res dto.GetBookingsResponse, err error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    dateField,
				Operator: gDto.FilterOperatorEq,
				Value:    calendar.Date(date).Format(constant.CalendarDateFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				ArgName:  "status_cancelled",
				Value:    model.StatusCancelled,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for date")

		return res, fmt.Errorf("failed to get bookings for date: %w", err)
	}

	res.FromModels(models, len(models), 0)

	return res, nil
}

// WindowFilter keeps the bookings whose stay [checkIn, checkOut) covers at
// least one day of the inclusive window [start, end]: the stay intersects
// the window iff checkIn <= end and checkOut > start.
func WindowFilter(start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCheckInDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    calendar.Date(end).Format(constant.CalendarDateFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckOutDate,
				Operator: gDto.FilterOperatorGreater,
				Value:    calendar.Date(start).Format(constant.CalendarDateFormat),
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) checkReferences(ctx context.Context, roomID, customerID string) error {
	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	customerExists, err := s.customerRepo.Exist(ctx, shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExists {
		return failure.BadRequestFromString("customer does not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, CacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, CacheCountBooking)
	}()
}

func (s *serviceImpl) publishEvent(ctx context.Context, event, bookingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key: bookingID,
			Value: map[string]string{
				"event":       event,
				"booking_id":  bookingID,
				"occurred_at": timezone.Format(timezone.Now(), constant.DateFormat),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}

// applyEdit lays the partial edit over the stored booking and re-validates
// the date invariant on the result.
func applyEdit(current model.Booking, req dto.UpdateBookingRequest) (model.Booking, error) {
	target := current

	if req.RoomID != constant.Empty {
		target.RoomID = req.RoomID
	}

	if req.CustomerID != constant.Empty {
		target.CustomerID = req.CustomerID
	}

	if req.Status != constant.Empty {
		target.Status = req.Status
	}

	if req.CheckInDate != constant.Empty {
		checkIn, err := time.Parse(constant.CalendarDateFormat, req.CheckInDate)
		if err != nil {
			return target, failure.BadRequestFromString("invalid check_in_date") // nolint:wrapcheck
		}

		target.CheckInDate = calendar.Date(checkIn)
	}

	if req.CheckOutDate != constant.Empty {
		checkOut, err := time.Parse(constant.CalendarDateFormat, req.CheckOutDate)
		if err != nil {
			return target, failure.BadRequestFromString("invalid check_out_date") // nolint:wrapcheck
		}

		target.CheckOutDate = calendar.Date(checkOut)
	}

	if !calendar.Date(target.CheckInDate).Before(calendar.Date(target.CheckOutDate)) {
		return target, failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	return target, nil
}

func conflictFailure(clash model.Booking) error {
	return failure.Conflict(fmt.Sprintf( // nolint:wrapcheck
		"room is already booked by booking %s from %s to %s",
		clash.ID,
		clash.CheckInDate.Format(constant.CalendarDateFormat),
		clash.CheckOutDate.Format(constant.CalendarDateFormat),
	))
}

func filterPaymentsByBooking(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    paymentModel.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    paymentModel.TableName,
			},
		},
	}
}

func paymentOrdering() gDto.QueryParams {
	return gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}
}
