package repository

import (
	"innkeep/infras/mongo"
	"innkeep/infras/otel"
	"innkeep/internal/domains/booking/model"
	"innkeep/shared/docstore"
)

type bookingCollection struct {
	docstore.Repository[model.Booking]
}

func NewDocument(conn *mongo.Connection, otel otel.Otel) Booking {
	return &bookingCollection{
		Repository: docstore.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, conn, otel),
	}
}
