package dashboard

import (
	"net/http"
	"time"

	"lodge/infras/otel"
	billingService "lodge/internal/domains/billing/service"
	bookingService "lodge/internal/domains/booking/service"
	costModel "lodge/internal/domains/roomcost/model"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler serves the reception desk views: who arrives, who leaves and
// who still owes money.
type Handler struct {
	bookingService bookingService.Booking
	billingService billingService.Billing
	otel           otel.Otel
}

func New(bookingService bookingService.Booking, billingService billingService.Billing, otel otel.Otel) Handler {
	return Handler{
		bookingService: bookingService,
		billingService: billingService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/arrivals", handler.GetArrivals)
		routerGroup.Get("/departures", handler.GetDepartures)
		routerGroup.Get("/dues", handler.GetDues)
		routerGroup.Get("/dues/{id}", handler.GetDueByBookingID)
	})
}

// GetArrivals retrieves the bookings checking in on a date.
// @Summary Get arrivals for a date
// @Description Retrieve the bookings whose check-in date falls on the given date. Defaults to today.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Arrivals for the date"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/arrivals [get]
func (handler *Handler) GetArrivals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArrivals")
	defer scope.End()

	date, err := dateOrToday(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	arrivals, err := handler.bookingService.Arrivals(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get arrivals")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Arrivals retrieved successfully")

	response.WithJSON(w, http.StatusOK, arrivals)
}

// GetDepartures retrieves the bookings checking out on a date.
// @Summary Get departures for a date
// @Description Retrieve the bookings whose check-out date falls on the given date. Defaults to today.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "Departures for the date"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/departures [get]
func (handler *Handler) GetDepartures(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartures")
	defer scope.End()

	date, err := dateOrToday(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	departures, err := handler.bookingService.Departures(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get departures")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Departures retrieved successfully")

	response.WithJSON(w, http.StatusOK, departures)
}

// GetDues retrieves every booking still owing money.
// @Summary Get all outstanding dues
// @Description Retrieve the non-cancelled bookings whose expected cost exceeds what they have paid.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.DueListResponse] "Outstanding dues"
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/dues [get]
func (handler *Handler) GetDues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDues")
	defer scope.End()

	dues, err := handler.billingService.DueList(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dues")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dues retrieved successfully")

	response.WithJSON(w, http.StatusOK, dues)
}

// GetDueByBookingID retrieves the due for a single booking.
// @Summary Get the due for a booking
// @Description Price a booking and subtract what it has paid. A negative due means the booking overpaid.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param duration_type query string false "Billing duration type (DAILY, MONTHLY); inferred from the stay length when omitted"
// @Success 200 {object} response.Data[dto.DueResponse] "Due for the booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/dues/{id} [get]
func (handler *Handler) GetDueByBookingID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDueByBookingID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	durationType := r.URL.Query().Get(costModel.FieldDurationType)
	if durationType != "" && durationType != costModel.DurationTypeDaily && durationType != costModel.DurationTypeMonthly {
		err := failure.BadRequestFromString("duration_type must be DAILY or MONTHLY")
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	due, err := handler.billingService.Due(ctx, id, durationType)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get due")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Due retrieved successfully")

	response.WithJSON(w, http.StatusOK, due)
}

func dateOrToday(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get(constant.RequestParamDate)
	if raw == "" {
		return timezone.Now(), nil
	}

	date, err := time.Parse(constant.CalendarDateFormat, raw)
	if err != nil {
		// nolint:wrapcheck
		return time.Time{}, failure.BadRequestFromString("date must be a valid date in YYYY-MM-DD format")
	}

	return date, nil
}
