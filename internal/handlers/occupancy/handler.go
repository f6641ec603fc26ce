package occupancy

import (
	"net/http"
	"time"

	"lodge/infras/otel"
	"lodge/internal/domains/occupancy/service"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Occupancy
	otel    otel.Otel
}

func New(service service.Occupancy, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/occupancy", func(routerGroup chi.Router) {
		routerGroup.Get("/grid", handler.GetGrid)
	})
}

// GetGrid builds the room-by-day occupancy matrix for a date window.
// @Summary Get the occupancy grid
// @Description Build a rectangular room-by-day matrix for the inclusive date window. Free days come back as EMPTY cells.
// @Tags Occupancy
// @Accept json
// @Produce json
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GridResponse] "Occupancy grid"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/occupancy/grid [get]
func (handler *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGrid")
	defer scope.End()

	start, err := parseDateParam(r, constant.RequestParamStartDate)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	end, err := parseDateParam(r, constant.RequestParamEndDate)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	grid, err := handler.service.Grid(ctx, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build occupancy grid")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupancy grid built successfully")

	response.WithJSON(w, http.StatusOK, grid)
}

func parseDateParam(r *http.Request, param string) (time.Time, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		// nolint:wrapcheck
		return time.Time{}, failure.BadRequestFromString(param + " is required")
	}

	date, err := time.Parse(constant.CalendarDateFormat, raw)
	if err != nil {
		// nolint:wrapcheck
		return time.Time{}, failure.BadRequestFromString(param + " must be a valid date in YYYY-MM-DD format")
	}

	return date, nil
}
