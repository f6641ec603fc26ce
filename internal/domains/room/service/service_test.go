package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	cacheMocks "lodge/shared/cache/mocks"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := roomMocks.NewMockRoom(ctrl)
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

func TestRoomService_Create(t *testing.T) {
	validReq := dto.CreateRoomRequest{
		RoomNumber:   "101",
		RoomType:     model.RoomTypeSingle,
		BathroomType: model.BathroomTypeAttached,
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(context.Background(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, "101", res.RoomNumber)
		assert.Equal(t, model.RoomTypeSingle, res.RoomType)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("duplicate room number conflicts", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), validReq)

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		svc, repo, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-1", RoomNumber: "101", RoomType: model.RoomTypeSingle}, nil)

		res, err := svc.Get(context.Background(), "room-1")

		assert.NoError(t, err)
		assert.Equal(t, "101", res.RoomNumber)
	})

	t.Run("missing room returns not found", func(t *testing.T) {
		svc, repo, _, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("room number change checks for collisions", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		gomock.InOrder(
			repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1", RoomNumber: "101"}, nil),
			repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
		)

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{RoomNumber: "102"}, "room-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("empty edit is rejected", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{}, "room-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing room returns not found", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateRoomRequest{RoomNumber: "102"}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("room with active bookings cannot be deleted", func(t *testing.T) {
		svc, repo, bookingRepo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		bookingRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				// The guard scopes to bookings that still hold the room;
				// checked-out and cancelled stays must not block the delete.
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.status IN")

				values := make([]any, 0, len(args))
				for name, value := range args {
					if strings.HasPrefix(name, bookingModel.FieldStatus+"_") {
						values = append(values, value)
					}
				}

				assert.NotContains(t, values, bookingModel.StatusCheckedOut)
				assert.NotContains(t, values, bookingModel.StatusCancelled)
				assert.Contains(t, values, bookingModel.StatusCheckedIn)

				return true, nil
			})

		err := svc.Delete(context.Background(), "room-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("idle room deletes cleanly", func(t *testing.T) {
		svc, repo, bookingRepo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(context.Background(), "room-1")

		assert.NoError(t, err)
	})

	t.Run("missing room returns not found", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
