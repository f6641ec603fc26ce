package dto

import (
	"github.com/google/uuid"

	"lodge/internal/domains/roomcost/model"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type UpsertRoomCostRequest struct {
	BathroomType string `json:"bathroom_type" validate:"required,oneof=ATTACHED COMMON"`
	DurationType string `json:"duration_type" validate:"required,oneof=DAILY MONTHLY"`
	RoomType     string `json:"room_type"     validate:"required,oneof=SINGLE SINGLE_SMALL DOUBLE TRIPLE QUEEN"`
	Cost         int64  `json:"cost"          validate:"required,gt=0"`
}

func (c *UpsertRoomCostRequest) ToModel(user string) model.RoomCost {
	return model.RoomCost{
		ID:           uuid.NewString(),
		BathroomType: c.BathroomType,
		DurationType: c.DurationType,
		RoomType:     c.RoomType,
		Cost:         c.Cost,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RoomCostResponse struct {
	ID           string `json:"id"`
	BathroomType string `json:"bathroom_type"`
	DurationType string `json:"duration_type"`
	RoomType     string `json:"room_type"`
	Cost         int64  `json:"cost"`
	gDto.Metadata
}

func (r *RoomCostResponse) FromModel(model model.RoomCost) {
	r.ID = model.ID
	r.BathroomType = model.BathroomType
	r.DurationType = model.DurationType
	r.RoomType = model.RoomType
	r.Cost = model.Cost
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomCostsResponse struct {
	RoomCosts []RoomCostResponse `json:"room_costs"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomCostsResponse) FromModels(models []model.RoomCost) {
	r.TotalData = len(models)

	r.RoomCosts = make([]RoomCostResponse, len(models))
	for i, mod := range models {
		r.RoomCosts[i].FromModel(mod)
	}
}
