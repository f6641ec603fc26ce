package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/roomcost/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

type RoomCost interface {
	Upsert(ctx context.Context, model model.RoomCost) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomCost, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomCost, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomCost]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RoomCost {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomCost](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert inserts the rate, or replaces the cost in place when the
// (bathroom type, duration type, room type) key already exists.
func (repo *repositoryImpl) Upsert(ctx context.Context, mod model.RoomCost) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room_cost.Upsert")
	defer scope.End()

	placeholders := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s, %s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = now(), %s = EXCLUDED.%s",
		model.TableName,
		strings.Join(repo.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldBathroomType, model.FieldDurationType, model.FieldRoomType,
		model.FieldCost, model.FieldCost,
		constant.FieldModifiedAt,
		constant.FieldModifiedBy, constant.FieldModifiedBy,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, mod)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}
