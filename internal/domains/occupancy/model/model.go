package model

import (
	"sort"
	"time"

	bookingModel "lodge/internal/domains/booking/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/calendar"
)

const (
	CellStatusEmpty = "EMPTY"
)

type Cell struct {
	Status    string
	GuestName string
	BookingID string
}

type Row struct {
	RoomID     string
	RoomNumber string
	Cells      []Cell
}

// Conflict records two bookings claiming the same room on the same day.
// The overlap check makes this unreachable through normal writes, but the
// grid stays defensive about data that arrived another way.
type Conflict struct {
	RoomID     string
	RoomNumber string
	Date       time.Time
	BookingIDs []string
}

type Grid struct {
	Days      []time.Time
	Rows      []Row
	Conflicts []Conflict
}

// Build projects the bookings onto a room-by-day matrix for the inclusive
// window [start, end]. Every room gets a row with one cell per day, empty
// rows included, so the grid is always rectangular. A booking covers a day
// iff checkIn <= day < checkOut. Cancelled bookings never occupy.
// Pure: same input, same grid.
func Build(rooms []roomModel.Room, bookings []bookingModel.Booking, start, end time.Time) Grid {
	days := calendar.Window(start, end)

	grid := Grid{
		Days: days,
		Rows: make([]Row, len(rooms)),
	}

	rowIndex := make(map[string]int, len(rooms))

	for i, room := range rooms {
		cells := make([]Cell, len(days))
		for j := range cells {
			cells[j] = Cell{Status: CellStatusEmpty}
		}

		grid.Rows[i] = Row{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Cells:      cells,
		}
		rowIndex[room.ID] = i
	}

	for _, booking := range bookings {
		if booking.Status == bookingModel.StatusCancelled {
			continue
		}

		// The window [start, end] is inclusive; as a half-open range it is
		// [start, end+1). A stay clear of it cannot mark any cell.
		if !calendar.Overlaps(booking.CheckInDate, booking.CheckOutDate, start, calendar.Date(end).AddDate(0, 0, 1)) {
			continue
		}

		row, ok := rowIndex[booking.RoomID]
		if !ok {
			continue
		}

		for j, day := range days {
			if !calendar.Occupies(booking.CheckInDate, booking.CheckOutDate, day) {
				continue
			}

			cell := grid.Rows[row].Cells[j]
			if cell.Status != CellStatusEmpty {
				// Later-inserted booking wins the cell; the double claim is
				// reported, not swallowed.
				grid.Conflicts = append(grid.Conflicts, Conflict{
					RoomID:     booking.RoomID,
					RoomNumber: grid.Rows[row].RoomNumber,
					Date:       day,
					BookingIDs: []string{cell.BookingID, booking.ID},
				})
			}

			grid.Rows[row].Cells[j] = Cell{
				Status:    booking.Status,
				GuestName: booking.CustomerName,
				BookingID: booking.ID,
			}
		}
	}

	sort.SliceStable(grid.Rows, func(i, j int) bool {
		return grid.Rows[i].RoomNumber < grid.Rows[j].RoomNumber
	})

	return grid
}
