package repository

import (
	"innkeep/infras/mongo"
	"innkeep/infras/otel"
	"innkeep/internal/domains/serviceorder/model"
	"innkeep/shared/docstore"
)

type orderCollection struct {
	docstore.Repository[model.ServiceOrder]
}

func NewDocument(conn *mongo.Connection, otel otel.Otel) ServiceOrder {
	return &orderCollection{
		Repository: docstore.NewRepository[model.ServiceOrder](model.EntityName, model.TableName, model.FieldID, conn, otel),
	}
}

type menuCollection struct {
	docstore.Repository[model.MenuItem]
}

func NewMenuDocument(conn *mongo.Connection, otel otel.Otel) Menu {
	return &menuCollection{
		Repository: docstore.NewRepository[model.MenuItem](model.MenuEntityName, model.MenuTableName, model.FieldID, conn, otel),
	}
}
