package dto

import (
	"lodge/internal/domains/occupancy/model"
	"lodge/shared/constant"
)

type CellResponse struct {
	Status    string `json:"status"`
	GuestName string `json:"guest_name,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
}

type RowResponse struct {
	RoomID     string         `json:"room_id"`
	RoomNumber string         `json:"room_number"`
	Cells      []CellResponse `json:"cells"`
}

type ConflictResponse struct {
	RoomID     string   `json:"room_id"`
	RoomNumber string   `json:"room_number"`
	Date       string   `json:"date"`
	BookingIDs []string `json:"booking_ids"`
}

type GridResponse struct {
	Days      []string           `json:"days"`
	Rows      []RowResponse      `json:"rows"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

func (res *GridResponse) FromGrid(grid model.Grid) {
	res.Days = make([]string, len(grid.Days))
	for i, day := range grid.Days {
		res.Days[i] = day.Format(constant.CalendarDateFormat)
	}

	res.Rows = make([]RowResponse, len(grid.Rows))
	for i, row := range grid.Rows {
		cells := make([]CellResponse, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = CellResponse{
				Status:    cell.Status,
				GuestName: cell.GuestName,
				BookingID: cell.BookingID,
			}
		}

		res.Rows[i] = RowResponse{
			RoomID:     row.RoomID,
			RoomNumber: row.RoomNumber,
			Cells:      cells,
		}
	}

	res.Conflicts = make([]ConflictResponse, len(grid.Conflicts))
	for i, conflict := range grid.Conflicts {
		res.Conflicts[i] = ConflictResponse{
			RoomID:     conflict.RoomID,
			RoomNumber: conflict.RoomNumber,
			Date:       conflict.Date.Format(constant.CalendarDateFormat),
			BookingIDs: conflict.BookingIDs,
		}
	}
}
