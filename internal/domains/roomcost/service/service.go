package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/roomcost/model"
	"lodge/internal/domains/roomcost/model/dto"
	"lodge/internal/domains/roomcost/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

const (
	cacheGetAllRoomCost = "roomcost:gets"
)

type RoomCost interface {
	Upsert(ctx context.Context, req dto.UpsertRoomCostRequest) (dto.RoomCostResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomCostsResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.RoomCost
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.RoomCost, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) RoomCost {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertRoomCostRequest) (res dto.RoomCostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod := req.ToModel(constant.SystemUser)

	if err = s.repo.Upsert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to upsert room cost")

		return res, fmt.Errorf("failed to upsert room cost: %w", err)
	}

	// The stored row keeps its original id on replace; read it back so the
	// response reflects what is persisted.
	stored, err := s.repo.Get(ctx, FilterByCostKey(req.BathroomType, req.DurationType, req.RoomType))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room cost after upsert")

		return res, fmt.Errorf("failed to get room cost after upsert: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomCost)
	}()

	res.FromModel(stored)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomCostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoomCost, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room costs")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room costs")

		return res, fmt.Errorf("failed to get room costs: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room costs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room cost exists")

		return fmt.Errorf("failed to check if room cost exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room cost not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room cost")

		return fmt.Errorf("failed to delete room cost: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoomCost)
	}()

	return nil
}

// FilterByCostKey matches the unique rate key of the cost table.
func FilterByCostKey(bathroomType, durationType, roomType string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBathroomType,
				Operator: gDto.FilterOperatorEq,
				Value:    bathroomType,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldDurationType,
				Operator: gDto.FilterOperatorEq,
				Value:    durationType,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomType,
				Operator: gDto.FilterOperatorEq,
				Value:    roomType,
				Table:    model.TableName,
			},
		},
	}
}
