package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	"lodge/internal/domains/billing/service"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	paymentMocks "lodge/internal/domains/payment/mocks"
	roomModel "lodge/internal/domains/room/model"
	costMocks "lodge/internal/domains/roomcost/mocks"
	costModel "lodge/internal/domains/roomcost/model"
	"lodge/shared/failure"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func newService(t *testing.T) (service.Billing, *bookingMocks.MockBooking, *paymentMocks.MockPayment, *costMocks.MockRoomCost) {
	t.Helper()

	ctrl := gomock.NewController(t)

	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	paymentRepo := paymentMocks.NewMockPayment(ctrl)
	costRepo := costMocks.NewMockRoomCost(ctrl)

	cfg := &config.Config{}
	cfg.Billing.MonthlyThresholdDays = 30
	cfg.Billing.DaysPerMonth = 30

	svc := service.New(bookingRepo, paymentRepo, costRepo, cfg, mocks.NewOtel())

	return svc, bookingRepo, paymentRepo, costRepo
}

func storedBooking(nights int) bookingModel.Booking {
	checkIn := day("2026-03-10")

	return bookingModel.Booking{
		ID:           "booking-1",
		RoomID:       "room-1",
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, nights),
		Status:       bookingModel.StatusCheckedIn,
		RoomNumber:   "101",
		RoomType:     roomModel.RoomTypeSingle,
		BathroomType: roomModel.BathroomTypeAttached,
		CustomerName: "Asha",
	}
}

func TestBillingService_Due(t *testing.T) {
	t.Run("three nights at the daily rate", func(t *testing.T) {
		svc, bookingRepo, paymentRepo, costRepo := newService(t)

		bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(3), nil)
		costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{ID: "cost-1", Cost: 1000}, nil)
		paymentRepo.EXPECT().Total(gomock.Any(), "booking-1").Return(int64(2000), nil)

		res, err := svc.Due(context.Background(), "booking-1", "")

		assert.NoError(t, err)
		assert.Equal(t, costModel.DurationTypeDaily, res.DurationType)
		assert.Equal(t, 3, res.Units)
		assert.Equal(t, int64(3000), res.ExpectedCost)
		assert.Equal(t, int64(2000), res.TotalPaid)
		assert.Equal(t, int64(1000), res.Due)
	})

	t.Run("overpaid booking has a negative due", func(t *testing.T) {
		svc, bookingRepo, paymentRepo, costRepo := newService(t)

		bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(2), nil)
		costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{ID: "cost-1", Cost: 1000}, nil)
		paymentRepo.EXPECT().Total(gomock.Any(), "booking-1").Return(int64(5000), nil)

		res, err := svc.Due(context.Background(), "booking-1", "")

		assert.NoError(t, err)
		assert.Equal(t, int64(-3000), res.Due)
	})

	t.Run("long stays infer the monthly rate and round up", func(t *testing.T) {
		svc, bookingRepo, paymentRepo, costRepo := newService(t)

		// 45 nights crosses the 30-night threshold: 2 months at the
		// monthly rate, the started second month charged in full.
		bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(45), nil)
		costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{ID: "cost-1", Cost: 12000}, nil)
		paymentRepo.EXPECT().Total(gomock.Any(), "booking-1").Return(int64(0), nil)

		res, err := svc.Due(context.Background(), "booking-1", "")

		assert.NoError(t, err)
		assert.Equal(t, costModel.DurationTypeMonthly, res.DurationType)
		assert.Equal(t, 2, res.Units)
		assert.Equal(t, int64(24000), res.ExpectedCost)
	})

	t.Run("explicit duration type overrides inference", func(t *testing.T) {
		svc, bookingRepo, paymentRepo, costRepo := newService(t)

		bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(10), nil)
		costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{ID: "cost-1", Cost: 12000}, nil)
		paymentRepo.EXPECT().Total(gomock.Any(), "booking-1").Return(int64(0), nil)

		res, err := svc.Due(context.Background(), "booking-1", costModel.DurationTypeMonthly)

		assert.NoError(t, err)
		assert.Equal(t, costModel.DurationTypeMonthly, res.DurationType)
		assert.Equal(t, 1, res.Units)
		assert.Equal(t, int64(12000), res.ExpectedCost)
	})

	t.Run("missing booking returns not found", func(t *testing.T) {
		svc, bookingRepo, _, _ := newService(t)

		bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := svc.Due(context.Background(), "missing", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("missing cost entry names the rate key", func(t *testing.T) {
		svc, bookingRepo, _, costRepo := newService(t)

		bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(3), nil)
		costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{}, nil)

		_, err := svc.Due(context.Background(), "booking-1", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Contains(t, err.Error(), roomModel.RoomTypeSingle)
	})
}

func TestBillingService_DueList(t *testing.T) {
	t.Run("keeps only bookings still owing", func(t *testing.T) {
		svc, bookingRepo, paymentRepo, costRepo := newService(t)

		owing := storedBooking(3)
		settled := storedBooking(2)
		settled.ID = "booking-2"

		bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{owing, settled}, nil)

		costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{ID: "cost-1", Cost: 1000}, nil).Times(2)
		paymentRepo.EXPECT().Total(gomock.Any(), "booking-1").Return(int64(500), nil)
		paymentRepo.EXPECT().Total(gomock.Any(), "booking-2").Return(int64(2000), nil)

		res, err := svc.DueList(context.Background())

		assert.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, "booking-1", res.Items[0].BookingID)
		assert.Equal(t, int64(2500), res.Items[0].Due)
		assert.Equal(t, int64(2500), res.Total)
	})

	t.Run("bookings without a cost entry are skipped", func(t *testing.T) {
		svc, bookingRepo, paymentRepo, costRepo := newService(t)

		priced := storedBooking(3)
		unpriced := storedBooking(3)
		unpriced.ID = "booking-2"
		unpriced.RoomType = roomModel.RoomTypeQueen

		bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{priced, unpriced}, nil)

		gomock.InOrder(
			costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{ID: "cost-1", Cost: 1000}, nil),
			costRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(costModel.RoomCost{}, nil),
		)
		paymentRepo.EXPECT().Total(gomock.Any(), "booking-1").Return(int64(0), nil)

		res, err := svc.DueList(context.Background())

		assert.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, int64(3000), res.Total)
	})

	t.Run("empty ledger yields an empty list", func(t *testing.T) {
		svc, bookingRepo, _, _ := newService(t)

		bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{}, nil)

		res, err := svc.DueList(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Zero(t, res.Total)
	})
}
