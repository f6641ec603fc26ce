package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookingModel "lodge/internal/domains/booking/model"
	"lodge/internal/domains/occupancy/model"
	roomModel "lodge/internal/domains/room/model"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func testRooms() []roomModel.Room {
	return []roomModel.Room{
		{ID: "room-2", RoomNumber: "102", RoomType: roomModel.RoomTypeDouble, BathroomType: roomModel.BathroomTypeCommon},
		{ID: "room-1", RoomNumber: "101", RoomType: roomModel.RoomTypeSingle, BathroomType: roomModel.BathroomTypeAttached},
	}
}

func TestBuild_EmptyGridIsRectangular(t *testing.T) {
	grid := model.Build(testRooms(), nil, day("2026-03-10"), day("2026-03-16"))

	assert.Len(t, grid.Days, 7)
	assert.Len(t, grid.Rows, 2)
	assert.Empty(t, grid.Conflicts)

	// Rows are sorted by room number even though the input was not.
	assert.Equal(t, "101", grid.Rows[0].RoomNumber)
	assert.Equal(t, "102", grid.Rows[1].RoomNumber)

	for _, row := range grid.Rows {
		assert.Len(t, row.Cells, 7)

		for _, cell := range row.Cells {
			assert.Equal(t, model.CellStatusEmpty, cell.Status)
			assert.Empty(t, cell.BookingID)
		}
	}
}

func TestBuild_CheckOutDayIsFree(t *testing.T) {
	bookings := []bookingModel.Booking{
		{
			ID:           "booking-1",
			RoomID:       "room-1",
			CheckInDate:  day("2026-03-11"),
			CheckOutDate: day("2026-03-13"),
			Status:       bookingModel.StatusConfirmed,
			CustomerName: "Asha",
		},
	}

	grid := model.Build(testRooms(), bookings, day("2026-03-10"), day("2026-03-14"))

	row := grid.Rows[0]
	assert.Equal(t, "101", row.RoomNumber)

	wantStatuses := []string{
		model.CellStatusEmpty,
		bookingModel.StatusConfirmed,
		bookingModel.StatusConfirmed,
		model.CellStatusEmpty, // check-out day
		model.CellStatusEmpty,
	}

	for i, want := range wantStatuses {
		assert.Equal(t, want, row.Cells[i].Status, "day index %d", i)
	}

	assert.Equal(t, "Asha", row.Cells[1].GuestName)
	assert.Equal(t, "booking-1", row.Cells[1].BookingID)
}

func TestBuild_CancelledBookingsNeverOccupy(t *testing.T) {
	bookings := []bookingModel.Booking{
		{
			ID:           "booking-1",
			RoomID:       "room-1",
			CheckInDate:  day("2026-03-10"),
			CheckOutDate: day("2026-03-14"),
			Status:       bookingModel.StatusCancelled,
		},
	}

	grid := model.Build(testRooms(), bookings, day("2026-03-10"), day("2026-03-14"))

	for _, cell := range grid.Rows[0].Cells {
		assert.Equal(t, model.CellStatusEmpty, cell.Status)
	}
}

func TestBuild_DoubleClaimIsReportedAndLaterBookingWins(t *testing.T) {
	bookings := []bookingModel.Booking{
		{
			ID:           "booking-1",
			RoomID:       "room-1",
			CheckInDate:  day("2026-03-10"),
			CheckOutDate: day("2026-03-13"),
			Status:       bookingModel.StatusConfirmed,
			CustomerName: "Asha",
		},
		{
			ID:           "booking-2",
			RoomID:       "room-1",
			CheckInDate:  day("2026-03-12"),
			CheckOutDate: day("2026-03-14"),
			Status:       bookingModel.StatusCheckedIn,
			CustomerName: "Ravi",
		},
	}

	grid := model.Build(testRooms(), bookings, day("2026-03-10"), day("2026-03-14"))

	// Both claim 2026-03-12; the later-inserted booking holds the cell.
	row := grid.Rows[0]
	assert.Equal(t, "booking-2", row.Cells[2].BookingID)
	assert.Equal(t, bookingModel.StatusCheckedIn, row.Cells[2].Status)

	assert.Len(t, grid.Conflicts, 1)
	conflict := grid.Conflicts[0]
	assert.Equal(t, "room-1", conflict.RoomID)
	assert.Equal(t, "101", conflict.RoomNumber)
	assert.Equal(t, day("2026-03-12"), conflict.Date)
	assert.Equal(t, []string{"booking-1", "booking-2"}, conflict.BookingIDs)
}

func TestBuild_BookingOutsideWindowLeavesNoMark(t *testing.T) {
	bookings := []bookingModel.Booking{
		{
			ID:           "booking-1",
			RoomID:       "room-1",
			CheckInDate:  day("2026-02-01"),
			CheckOutDate: day("2026-02-05"),
			Status:       bookingModel.StatusCheckedOut,
		},
		{
			// Checks out on the window start; half-open, so no overlap.
			ID:           "booking-2",
			RoomID:       "room-1",
			CheckInDate:  day("2026-03-08"),
			CheckOutDate: day("2026-03-10"),
			Status:       bookingModel.StatusConfirmed,
		},
		{
			// Checks in the day after the window ends.
			ID:           "booking-3",
			RoomID:       "room-1",
			CheckInDate:  day("2026-03-15"),
			CheckOutDate: day("2026-03-18"),
			Status:       bookingModel.StatusConfirmed,
		},
	}

	grid := model.Build(testRooms(), bookings, day("2026-03-10"), day("2026-03-14"))

	for _, cell := range grid.Rows[0].Cells {
		assert.Equal(t, model.CellStatusEmpty, cell.Status)
	}
}

func TestBuild_IsPure(t *testing.T) {
	bookings := []bookingModel.Booking{
		{
			ID:           "booking-1",
			RoomID:       "room-2",
			CheckInDate:  day("2026-03-11"),
			CheckOutDate: day("2026-03-13"),
			Status:       bookingModel.StatusPending,
		},
	}

	first := model.Build(testRooms(), bookings, day("2026-03-10"), day("2026-03-14"))
	second := model.Build(testRooms(), bookings, day("2026-03-10"), day("2026-03-14"))

	assert.Equal(t, first, second)
}
