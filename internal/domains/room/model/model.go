package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldRoomNumber   = "room_number"
	FieldRoomType     = "room_type"
	FieldBathroomType = "bathroom_type"
)

const (
	RoomTypeSingle      = "SINGLE"
	RoomTypeSingleSmall = "SINGLE_SMALL"
	RoomTypeDouble      = "DOUBLE"
	RoomTypeTriple      = "TRIPLE"
	RoomTypeQueen       = "QUEEN"
)

const (
	BathroomTypeAttached = "ATTACHED"
	BathroomTypeCommon   = "COMMON"
)

type Room struct {
	ID           string `db:"id"`
	RoomNumber   string `db:"room_number"`
	RoomType     string `db:"room_type"`
	BathroomType string `db:"bathroom_type"`
	model.Metadata
}
