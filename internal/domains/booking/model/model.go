package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldCustomerID   = "customer_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
)

// Lifecycle: NEW -> PENDING -> CONFIRMED -> CHECKED_IN -> CHECKED_OUT,
// with CANCELLED reachable from any non-terminal state. Status is set
// explicitly; date or room edits never change it.
const (
	StatusNew        = "NEW"
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
	StatusCancelled  = "CANCELLED"
)

func IsTerminalStatus(status string) bool {
	return status == StatusCheckedOut || status == StatusCancelled
}

// ActiveStatuses lists the statuses of bookings that still hold their room.
func ActiveStatuses() []string {
	all := []string{StatusNew, StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

	active := make([]string, 0, len(all))

	for _, status := range all {
		if !IsTerminalStatus(status) {
			active = append(active, status)
		}
	}

	return active
}

// Booking holds a room for [CheckInDate, CheckOutDate); the check-out day
// itself is free for the next guest. Room and customer columns are joined
// in for display.
type Booking struct {
	ID           string    `db:"id"`
	RoomID       string    `db:"room_id"`
	CustomerID   string    `db:"customer_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       string    `db:"status"`

	RoomNumber    string `db:"room_number"    table:"rooms"`
	RoomType      string `db:"room_type"      table:"rooms"`
	BathroomType  string `db:"bathroom_type"  table:"rooms"`
	CustomerName  string `db:"customer_name"  table:"customers" column:"name"`
	CustomerPhone string `db:"customer_phone" table:"customers" column:"phone_number"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id JOIN customers ON customers.id = bookings.customer_id"
}
