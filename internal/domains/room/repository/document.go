package repository

import (
	"innkeep/infras/mongo"
	"innkeep/infras/otel"
	"innkeep/internal/domains/room/model"
	"innkeep/shared/docstore"
)

type roomCollection struct {
	docstore.Repository[model.Room]
}

func NewDocument(conn *mongo.Connection, otel otel.Otel) Room {
	return &roomCollection{
		Repository: docstore.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, conn, otel),
	}
}
