package dto

import (
	"time"

	"github.com/google/uuid"

	"lodge/internal/domains/payment/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Amount    int64  `json:"amount"     validate:"required,gt=0"`
	Mode      string `json:"mode"       validate:"required,oneof=CASH ONLINE CREDIT_CARD DEBIT_CARD UPI NET_BANKING CARE_TAKER"`
	PaidAt    string `json:"paid_at"    validate:"omitempty"`
}

func (c *CreatePaymentRequest) ToModel(user string) (model.Payment, error) {
	paidAt := timezone.Now()

	if c.PaidAt != constant.Empty {
		parsed, err := time.Parse(time.RFC3339, c.PaidAt)
		if err != nil {
			return model.Payment{}, failure.BadRequestFromString("paid_at must be an RFC3339 timestamp") // nolint:wrapcheck
		}

		paidAt = parsed
	}

	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		Amount:    c.Amount,
		Mode:      c.Mode,
		PaidAt:    paidAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type PaymentResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Mode      string `json:"mode"`
	PaidAt    string `json:"paid_at"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Mode = model.Mode
	r.PaidAt = timezone.Format(model.PaidAt, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalData int               `json:"total_data"`
	Total     int64             `json:"total"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment) {
	r.TotalData = len(models)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
		r.Total += mod.Amount
	}
}
