package roomcost

import (
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/roomcost/model"
	"lodge/internal/domains/roomcost/model/dto"
	"lodge/internal/domains/roomcost/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomCost
	otel    otel.Otel
}

func New(service service.RoomCost, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-costs", func(routerGroup chi.Router) {
		routerGroup.Put("/", handler.UpsertRoomCost)
		routerGroup.Get("/", handler.GetRoomCosts)
		routerGroup.Delete("/{id}", handler.DeleteRoomCost)
	})
}

// UpsertRoomCost creates or replaces the cost for a rate key.
// @Summary Upsert a room cost
// @Description Set the cost for a (bathroom type, duration type, room type) combination, replacing any existing entry.
// @Tags RoomCost
// @Accept json
// @Produce json
// @Param request body dto.UpsertRoomCostRequest true "Upsert Room Cost Request"
// @Success 200 {object} response.Data[dto.RoomCostResponse] "Room cost stored successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-costs [put]
func (handler *Handler) UpsertRoomCost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertRoomCost")
	defer scope.End()

	req := dto.UpsertRoomCostRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	cost, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert room cost")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room cost stored successfully")

	response.WithJSON(w, http.StatusOK, cost)
}

// GetRoomCosts retrieves the cost table.
// @Summary Get all room costs
// @Description Retrieve all room cost entries with optional filtering.
// @Tags RoomCost
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_type query string false "Filter by room type"
// @Param duration_type query string false "Filter by duration type (DAILY, MONTHLY)"
// @Success 200 {object} response.Data[dto.GetRoomCostsResponse] "List of room costs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-costs [get]
func (handler *Handler) GetRoomCosts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomCosts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomType := r.URL.Query().Get(model.FieldRoomType)
	durationType := r.URL.Query().Get(model.FieldDurationType)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if roomType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorEq,
			Value:    roomType,
			Table:    model.TableName,
		})
	}

	if durationType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDurationType,
			Operator: gDto.FilterOperatorEq,
			Value:    durationType,
			Table:    model.TableName,
		})
	}

	costs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room costs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room costs retrieved successfully")

	response.WithJSON(w, http.StatusOK, costs)
}

// DeleteRoomCost deletes a room cost entry by its ID.
// @Summary Delete a room cost by ID
// @Description Remove a cost entry from the rate table.
// @Tags RoomCost
// @Accept json
// @Produce json
// @Param id path string true "Room Cost ID"
// @Success 200 {object} response.Message "Room cost deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-costs/{id} [delete]
func (handler *Handler) DeleteRoomCost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomCost")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room cost")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room cost deleted successfully")

	response.WithMessage(w, http.StatusOK, "Room cost deleted successfully")
}
