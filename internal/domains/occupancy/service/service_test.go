package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	"lodge/internal/domains/occupancy/model"
	"lodge/internal/domains/occupancy/service"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/failure"
)

func newService(t *testing.T) (service.Occupancy, *roomMocks.MockRoom, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)

	roomRepo := roomMocks.NewMockRoom(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)

	svc := service.New(roomRepo, bookingRepo, mocks.NewOtel())

	return svc, roomRepo, bookingRepo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccupancyService_Grid(t *testing.T) {
	start := day(2026, time.March, 10)
	end := day(2026, time.March, 12)

	t.Run("grid covers every room and day of the window", func(t *testing.T) {
		svc, roomRepo, bookingRepo := newService(t)

		roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{
				{ID: "room-1", RoomNumber: "101"},
				{ID: "room-2", RoomNumber: "102"},
			}, nil)
		bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				{
					ID:           "booking-1",
					RoomID:       "room-1",
					CheckInDate:  day(2026, time.March, 10),
					CheckOutDate: day(2026, time.March, 12),
					Status:       bookingModel.StatusConfirmed,
					CustomerName: "Asha",
				},
			}, nil)

		res, err := svc.Grid(context.Background(), start, end)

		assert.NoError(t, err)
		assert.Len(t, res.Days, 3)
		assert.Len(t, res.Rows, 2)
		assert.Equal(t, "101", res.Rows[0].RoomNumber)
		assert.Equal(t, bookingModel.StatusConfirmed, res.Rows[0].Cells[0].Status)
		assert.Equal(t, "Asha", res.Rows[0].Cells[0].GuestName)
		// Check-out day stays free.
		assert.Equal(t, model.CellStatusEmpty, res.Rows[0].Cells[2].Status)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Grid(context.Background(), end, start)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("room repository error is propagated", func(t *testing.T) {
		svc, roomRepo, _ := newService(t)

		roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.Grid(context.Background(), start, end)

		assert.Error(t, err)
	})
}
