package dto

import (
	"time"

	"github.com/google/uuid"

	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/calendar"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID       string `json:"room_id"        validate:"required"`
	CustomerID   string `json:"customer_id"    validate:"required"`
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.CalendarDateFormat, c.CheckInDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("invalid check_in_date") // nolint:wrapcheck
	}

	checkOut, err := time.Parse(constant.CalendarDateFormat, c.CheckOutDate)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("invalid check_out_date") // nolint:wrapcheck
	}

	if !calendar.Date(checkIn).Before(calendar.Date(checkOut)) {
		return model.Booking{}, failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	return model.Booking{
		ID:           uuid.NewString(),
		RoomID:       c.RoomID,
		CustomerID:   c.CustomerID,
		CheckInDate:  calendar.Date(checkIn),
		CheckOutDate: calendar.Date(checkOut),
		Status:       model.StatusNew,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdateBookingRequest carries the full edit surface. The supplied status is
// applied as-is, any of the six lifecycle values; date and room changes are
// re-validated against the other bookings on the target room.
type UpdateBookingRequest struct {
	RoomID       string `db:"room_id"        json:"room_id"        validate:"omitempty"`
	CustomerID   string `db:"customer_id"    json:"customer_id"    validate:"omitempty"`
	CheckInDate  string `json:"check_in_date"  validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	Status       string `db:"status"         json:"status"         validate:"omitempty,oneof=NEW PENDING CONFIRMED CHECKED_IN CHECKED_OUT CANCELLED"`
}

type RoomSummary struct {
	ID           string `json:"id"`
	RoomNumber   string `json:"room_number"`
	RoomType     string `json:"room_type"`
	BathroomType string `json:"bathroom_type"`
}

type CustomerSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type BookingResponse struct {
	ID           string          `json:"id"`
	Room         RoomSummary     `json:"room"`
	Customer     CustomerSummary `json:"customer"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Status       string          `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Room = RoomSummary{
		ID:           model.RoomID,
		RoomNumber:   model.RoomNumber,
		RoomType:     model.RoomType,
		BathroomType: model.BathroomType,
	}
	r.Customer = CustomerSummary{
		ID:          model.CustomerID,
		Name:        model.CustomerName,
		PhoneNumber: model.CustomerPhone,
	}
	r.CheckInDate = model.CheckInDate.Format(constant.CalendarDateFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.CalendarDateFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type PaymentEntry struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Mode   string `json:"mode"`
	PaidAt string `json:"paid_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	Payments  []PaymentEntry `json:"payments"`
	TotalPaid int64          `json:"total_paid"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
