package repository

import (
	"innkeep/infras/mongo"
	"innkeep/infras/otel"
	"innkeep/internal/domains/pricing/model"
	"innkeep/shared/docstore"
)

type roomTypeCollection struct {
	docstore.Repository[model.RoomType]
}

func NewRoomTypeDocument(conn *mongo.Connection, otel otel.Otel) RoomType {
	return &roomTypeCollection{
		Repository: docstore.NewRepository[model.RoomType](model.RoomTypeEntityName, model.RoomTypeTableName, model.FieldCode, conn, otel),
	}
}

type calendarCollection struct {
	docstore.Repository[model.Calendar]
}

func NewCalendarDocument(conn *mongo.Connection, otel otel.Otel) Calendar {
	return &calendarCollection{
		Repository: docstore.NewRepository[model.Calendar](model.CalendarEntityName, model.CalendarTableName, model.FieldID, conn, otel),
	}
}

type paymentAccountCollection struct {
	docstore.Repository[model.PaymentAccount]
}

func NewPaymentAccountDocument(conn *mongo.Connection, otel otel.Otel) PaymentAccount {
	return &paymentAccountCollection{
		Repository: docstore.NewRepository[model.PaymentAccount](model.PaymentAccountEntityName, model.PaymentAccountTableName, model.FieldID, conn, otel),
	}
}
