package model

import "lodge/shared/model"

const (
	TableName  = "room_costs"
	EntityName = "room_cost"

	FieldID           = "id"
	FieldBathroomType = "bathroom_type"
	FieldDurationType = "duration_type"
	FieldRoomType     = "room_type"
	FieldCost         = "cost"
)

const (
	DurationTypeDaily   = "DAILY"
	DurationTypeMonthly = "MONTHLY"
)

// RoomCost is the nightly (DAILY) or per-month (MONTHLY) rate for a
// (bathroom type, duration type, room type) combination. Cost is in the
// smallest currency unit. The key combination is unique; writing an
// existing key replaces the rate in place.
type RoomCost struct {
	ID           string `db:"id"`
	BathroomType string `db:"bathroom_type"`
	DurationType string `db:"duration_type"`
	RoomType     string `db:"room_type"`
	Cost         int64  `db:"cost"`
	model.Metadata
}
