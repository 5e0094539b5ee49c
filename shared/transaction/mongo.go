package transaction

import (
	"context"
	"fmt"

	"innkeep/infras/mongo"
	"innkeep/infras/otel"
	"innkeep/shared/constant"

	mongoDriver "go.mongodb.org/mongo-driver/v2/mongo"
)

type mongoTransactor struct {
	conn *mongo.Connection
	otel otel.Otel
}

// NewMongo needs a replica set or sharded cluster; standalone servers reject
// multi-document transactions.
func NewMongo(conn *mongo.Connection, otel otel.Otel) Transactor {
	return &mongoTransactor{
		conn: conn,
		otel: otel,
	}
}

// WithinTransaction retries transient write conflicts and unknown commit
// results through the driver's session callback.
func (t *mongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if mongoDriver.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".WithinTransaction")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := t.conn.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx context.Context) (any, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
