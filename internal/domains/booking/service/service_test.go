package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/service"
	customerMocks "lodge/internal/domains/customer/mocks"
	paymentMocks "lodge/internal/domains/payment/mocks"
	paymentModel "lodge/internal/domains/payment/model"
	roomMocks "lodge/internal/domains/room/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/failure"
)

type serviceMocks struct {
	repo     *bookingMocks.MockBooking
	room     *roomMocks.MockRoom
	customer *customerMocks.MockCustomer
	payment  *paymentMocks.MockPayment
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
}

func newService(t *testing.T) (service.Booking, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:     bookingMocks.NewMockBooking(ctrl),
		room:     roomMocks.NewMockRoom(ctrl),
		customer: customerMocks.NewMockCustomer(ctrl),
		payment:  paymentMocks.NewMockPayment(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}

	// Cache writes and event publishing happen on background goroutines;
	// the tests only pin down the synchronous path.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.room, m.customer, m.payment, cfg, m.cache, mocks.NewOtel(), m.kafka)

	return svc, m
}

func runTx(m *bookingMocks.MockBooking) {
	m.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func expectReferencesOK(m serviceMocks) {
	m.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	m.customer.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		RoomID:       "room-1",
		CustomerID:   "customer-1",
		CheckInDate:  "2026-03-10",
		CheckOutDate: "2026-03-13",
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, m := newService(t)

		expectReferencesOK(m)
		runTx(m.repo)
		m.repo.EXPECT().LockRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil)
		m.repo.EXPECT().
			FindConflictTx(gomock.Any(), gomock.Any(), "room-1", day("2026-03-10"), day("2026-03-13"), gomock.Any()).
			Return(model.Booking{}, nil)
		m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{
				ID:           "booking-1",
				RoomID:       "room-1",
				CustomerID:   "customer-1",
				CheckInDate:  day("2026-03-10"),
				CheckOutDate: day("2026-03-13"),
				Status:       model.StatusNew,
				RoomNumber:   "101",
				CustomerName: "Asha",
			}, nil)

		res, err := svc.Create(context.Background(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Equal(t, model.StatusNew, res.Status)
		assert.Equal(t, "101", res.Room.RoomNumber)
		assert.Equal(t, "Asha", res.Customer.Name)
	})

	t.Run("check-out before check-in is rejected", func(t *testing.T) {
		svc, _ := newService(t)

		req := validReq
		req.CheckInDate = "2026-03-13"
		req.CheckOutDate = "2026-03-10"

		_, err := svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("zero-length stay is rejected", func(t *testing.T) {
		svc, _ := newService(t)

		req := validReq
		req.CheckOutDate = req.CheckInDate

		_, err := svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown room is rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.room.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.customer.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("overlapping booking conflicts and names the clash", func(t *testing.T) {
		svc, m := newService(t)

		expectReferencesOK(m)
		runTx(m.repo)
		m.repo.EXPECT().LockRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil)
		m.repo.EXPECT().
			FindConflictTx(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{
				ID:           "booking-9",
				CheckInDate:  day("2026-03-11"),
				CheckOutDate: day("2026-03-14"),
			}, nil)

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "booking-9")
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		svc, m := newService(t)

		expectReferencesOK(m)
		runTx(m.repo)
		m.repo.EXPECT().LockRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil)
		m.repo.EXPECT().
			FindConflictTx(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)
		m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
	})
}

func TestBookingService_Update(t *testing.T) {
	stored := model.Booking{
		ID:           "booking-1",
		RoomID:       "room-1",
		CustomerID:   "customer-1",
		CheckInDate:  day("2026-03-10"),
		CheckOutDate: day("2026-03-13"),
		Status:       model.StatusConfirmed,
	}

	t.Run("status edit re-checks availability excluding itself", func(t *testing.T) {
		svc, m := newService(t)

		updated := stored
		updated.Status = model.StatusCheckedIn

		gomock.InOrder(
			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)
		runTx(m.repo)
		m.repo.EXPECT().LockRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil)
		m.repo.EXPECT().
			FindConflictTx(gomock.Any(), gomock.Any(), "room-1", stored.CheckInDate, stored.CheckOutDate, "booking-1").
			Return(model.Booking{}, nil)
		m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Update(context.Background(), dto.UpdateBookingRequest{Status: model.StatusCheckedIn}, "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCheckedIn, res.Status)
	})

	t.Run("cancelling skips the conflict scan", func(t *testing.T) {
		svc, m := newService(t)

		updated := stored
		updated.Status = model.StatusCancelled

		gomock.InOrder(
			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)
		runTx(m.repo)
		m.repo.EXPECT().LockRoomTx(gomock.Any(), gomock.Any(), "room-1").Return(nil)
		m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Update(context.Background(), dto.UpdateBookingRequest{Status: model.StatusCancelled}, "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("date edit producing an inverted stay is rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

		req := dto.UpdateBookingRequest{CheckOutDate: "2026-03-09"}

		_, err := svc.Update(context.Background(), req, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("empty edit is rejected", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Update(context.Background(), dto.UpdateBookingRequest{}, "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing booking returns not found", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Update(context.Background(), dto.UpdateBookingRequest{Status: model.StatusPending}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("delete removes payments with the booking", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		runTx(m.repo)
		m.payment.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(context.Background(), "booking-1")

		assert.NoError(t, err)
	})

	t.Run("missing booking returns not found", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("detail carries payments and total paid", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{
			ID:           "booking-1",
			RoomID:       "room-1",
			CheckInDate:  day("2026-03-10"),
			CheckOutDate: day("2026-03-13"),
			Status:       model.StatusCheckedIn,
		}, nil)
		m.payment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]paymentModel.Payment{
				{ID: "payment-1", BookingID: "booking-1", Amount: 2000, Mode: paymentModel.ModeCash},
				{ID: "payment-2", BookingID: "booking-1", Amount: 500, Mode: paymentModel.ModeUPI},
			}, nil)

		res, err := svc.Get(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Len(t, res.Payments, 2)
		assert.Equal(t, int64(2500), res.TotalPaid)
	})

	t.Run("missing booking returns not found", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_ArrivalsAndDepartures(t *testing.T) {
	svc, m := newService(t)

	arrivals := []model.Booking{
		{ID: "booking-1", CheckInDate: day("2026-03-10"), CheckOutDate: day("2026-03-12"), Status: model.StatusConfirmed},
		{ID: "booking-2", CheckInDate: day("2026-03-10"), CheckOutDate: day("2026-03-15"), Status: model.StatusNew},
	}

	m.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(arrivals, nil)

	res, err := svc.Arrivals(context.Background(), day("2026-03-10"))

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 2, res.TotalData)

	m.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(arrivals[:1], nil)

	res, err = svc.Departures(context.Background(), day("2026-03-12"))

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
}

func TestWindowFilter(t *testing.T) {
	filter := service.WindowFilter(day("2026-03-10"), day("2026-03-12"))

	where, args := filter.GetWhereClause()

	// Half-open stays against an inclusive window: a stay covers a window
	// day iff check_in <= end and check_out > start, so a stay checking out
	// on the window start leaves no overlap.
	assert.Contains(t, where, "bookings.check_in_date <= :check_in_date")
	assert.Contains(t, where, "bookings.check_out_date > :check_out_date")
	assert.Equal(t, "2026-03-12", args["check_in_date"])
	assert.Equal(t, "2026-03-10", args["check_out_date"])
}
