// Package docstore is the document-store counterpart of shared/repository.
// It exposes the same method set so domain repositories can switch backend
// without touching their services.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"innkeep/infras/mongo"
	"innkeep/infras/otel"
	"innkeep/shared/constant"
	"innkeep/shared/dto"
	"innkeep/shared/logger"
	gModel "innkeep/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongoDriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	fieldLockToken = "_lock"
	sortAscending  = 1
	sortDescending = -1
)

var (
	errRequiredFilter = errors.New("required filter")
)

type Repository[T any] struct {
	collection    *mongoDriver.Collection
	otel          otel.Otel
	entitas       string
	primaryColumn string
}

func NewRepository[T any](entitasName, collectionName, primaryColumn string, conn *mongo.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		collection:    conn.Database.Collection(collectionName),
		otel:          otl,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
	}
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	if _, err := repo.collection.InsertOne(ctx, model); err != nil {
		scope.TraceError(err)

		if mongoDriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to insert data (%s): %w", repo.entitas, gModel.ErrDuplicate)
		}

		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := BuildFilter(filter, repo.primaryColumn)
	if len(query) == 0 {
		return false, errRequiredFilter
	}

	count, err := repo.collection.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	return count > 0, nil
}

// Get returns the zero value of T when nothing matches. Column projection is
// not applied; documents are always read whole.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, _ ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	err := repo.collection.FindOne(ctx, BuildFilter(filter, repo.primaryColumn)).Decode(&model)
	if errors.Is(err, mongoDriver.ErrNoDocuments) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

// GetForUpdate writes a fresh lock token to the matched document. Inside a
// transaction that write conflicts with any concurrent writer, which turns
// the read into an exclusive claim the same way SELECT ... FOR UPDATE does.
func (repo *Repository[T]) GetForUpdate(ctx context.Context, filter dto.FilterGroup) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetForUpdate", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	update := bson.M{"$set": bson.M{fieldLockToken: bson.NewObjectID()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := repo.collection.FindOneAndUpdate(ctx, BuildFilter(filter, repo.primaryColumn), update, opts).Decode(&model)
	if errors.Is(err, mongoDriver.ErrNoDocuments) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to lock data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	opts := options.Find()

	if params.Limit > 0 {
		opts.SetLimit(int64(params.Limit)).SetSkip(int64(params.Offset()))
	}

	if params.SortBy != "" {
		direction := sortAscending
		if params.Descending() {
			direction = sortDescending
		}

		opts.SetSort(bson.D{{Key: documentField(params.SortBy, repo.primaryColumn), Value: direction}})
	}

	models := []T{}

	cursor, err := repo.collection.Find(ctx, BuildFilter(filter, repo.primaryColumn), opts)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	if err = cursor.All(ctx, &models); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to decode all data (%s): %w", repo.entitas, err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	count, err := repo.collection.CountDocuments(ctx, BuildFilter(filter, repo.primaryColumn))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", repo.entitas, err)
	}

	return int(count), nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := BuildFilter(filter, repo.primaryColumn)
	if len(query) == 0 {
		return errRequiredFilter
	}

	update := BuildUpdate(mod, repo.primaryColumn)
	if len(update) == 0 {
		return nil
	}

	if _, err := repo.collection.UpdateMany(ctx, query, update); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := BuildFilter(filter, repo.primaryColumn)
	if len(query) == 0 {
		return errRequiredFilter
	}

	if _, err := repo.collection.DeleteMany(ctx, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	return nil
}
