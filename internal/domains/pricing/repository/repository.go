package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/internal/domains/pricing/model"
	gDto "innkeep/shared/dto"
	gRepo "innkeep/shared/repository"
)

// RoomType stores the rate tables keyed by room type code.
type RoomType interface {
	Insert(ctx context.Context, data model.RoomType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetForUpdate(ctx context.Context, filter gDto.FilterGroup) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
	// Delete returns gModel.ErrReferenced when rooms still point at the type.
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Calendar interface {
	Insert(ctx context.Context, data model.Calendar) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Calendar, error)
	GetForUpdate(ctx context.Context, filter gDto.FilterGroup) (model.Calendar, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
}

// PaymentAccount holds the single bank account record.
type PaymentAccount interface {
	Insert(ctx context.Context, data model.PaymentAccount) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PaymentAccount, error)
	GetForUpdate(ctx context.Context, filter gDto.FilterGroup) (model.PaymentAccount, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
}

type roomTypeTable struct {
	gRepo.Repository[model.RoomType]
}

func NewRoomType(db *postgres.Connection, otel otel.Otel) RoomType {
	return &roomTypeTable{
		Repository: gRepo.NewRepository[model.RoomType](model.RoomTypeEntityName, model.RoomTypeTableName, model.FieldCode, db, otel),
	}
}

type calendarTable struct {
	gRepo.Repository[model.Calendar]
}

func NewCalendar(db *postgres.Connection, otel otel.Otel) Calendar {
	return &calendarTable{
		Repository: gRepo.NewRepository[model.Calendar](model.CalendarEntityName, model.CalendarTableName, model.FieldID, db, otel),
	}
}

type paymentAccountTable struct {
	gRepo.Repository[model.PaymentAccount]
}

func NewPaymentAccount(db *postgres.Connection, otel otel.Otel) PaymentAccount {
	return &paymentAccountTable{
		Repository: gRepo.NewRepository[model.PaymentAccount](model.PaymentAccountEntityName, model.PaymentAccountTableName, model.FieldID, db, otel),
	}
}
