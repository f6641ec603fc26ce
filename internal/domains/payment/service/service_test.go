package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	paymentMocks "lodge/internal/domains/payment/mocks"
	"lodge/internal/domains/payment/model"
	"lodge/internal/domains/payment/model/dto"
	"lodge/internal/domains/payment/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/failure"
)

func newService(t *testing.T) (service.Payment, *paymentMocks.MockPayment, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := paymentMocks.NewMockPayment(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	// Cache maintenance runs on background goroutines.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(repo, bookingRepo, cfg, mockCache, mocks.NewOtel())

	return svc, repo, bookingRepo, mockCache
}

func TestPaymentService_Create(t *testing.T) {
	validReq := dto.CreatePaymentRequest{
		BookingID: "booking-1",
		Amount:    2000,
		Mode:      model.ModeCash,
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, repo, bookingRepo, _ := newService(t)

		bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(context.Background(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.BookingID)
		assert.Equal(t, int64(2000), res.Amount)
		assert.Equal(t, model.ModeCash, res.Mode)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("payment against a missing booking is rejected", func(t *testing.T) {
		svc, _, bookingRepo, _ := newService(t)

		bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("explicit paid_at must parse", func(t *testing.T) {
		svc, _, bookingRepo, _ := newService(t)

		bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		req := validReq
		req.PaidAt = "not-a-date"

		_, err := svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		svc, repo, bookingRepo, _ := newService(t)

		bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
	})
}

func TestPaymentService_GetAll(t *testing.T) {
	t.Run("returns the booking ledger oldest first", func(t *testing.T) {
		svc, repo, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Payment{
				{ID: "payment-1", BookingID: "booking-1", Amount: 2000, Mode: model.ModeCash},
				{ID: "payment-2", BookingID: "booking-1", Amount: 500, Mode: model.ModeUPI},
			}, nil)

		res, err := svc.GetAll(context.Background(), "booking-1")

		assert.NoError(t, err)
		assert.Len(t, res.Payments, 2)
		assert.Equal(t, int64(2500), res.Total)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		svc, _, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.GetAll(context.Background(), "booking-1")

		assert.NoError(t, err)
	})
}

func TestPaymentService_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Payment{ID: "payment-1", BookingID: "booking-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(context.Background(), "payment-1")

		assert.NoError(t, err)
	})

	t.Run("missing payment returns not found", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPaymentService_Total(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().Total(gomock.Any(), "booking-1").Return(int64(4500), nil)

	total, err := svc.Total(context.Background(), "booking-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(4500), total)
}
