package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/internal/domains/serviceorder/model"
	gDto "innkeep/shared/dto"
	gRepo "innkeep/shared/repository"
)

type ServiceOrder interface {
	Insert(ctx context.Context, data model.ServiceOrder) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceOrder, error)
}

// Menu is the food and drink catalog orders are priced from.
type Menu interface {
	Insert(ctx context.Context, data model.MenuItem) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MenuItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MenuItem, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type orderTable struct {
	gRepo.Repository[model.ServiceOrder]
}

func New(db *postgres.Connection, otel otel.Otel) ServiceOrder {
	return &orderTable{
		Repository: gRepo.NewRepository[model.ServiceOrder](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type menuTable struct {
	gRepo.Repository[model.MenuItem]
}

func NewMenu(db *postgres.Connection, otel otel.Otel) Menu {
	return &menuTable{
		Repository: gRepo.NewRepository[model.MenuItem](model.MenuEntityName, model.MenuTableName, model.FieldID, db, otel),
	}
}
