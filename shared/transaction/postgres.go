package transaction

import (
	"context"
	"errors"
	"fmt"

	"innkeep/config"
	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	"innkeep/shared/constant"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type postgresTransactor struct {
	db       *postgres.Connection
	otel     otel.Otel
	maxRetry int
}

func NewPostgres(db *postgres.Connection, cfg *config.Config, otel otel.Otel) Transactor {
	return &postgresTransactor{
		db:       db,
		otel:     otel,
		maxRetry: max(cfg.DB.TxMaxRetry, 0),
	}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// Serialization failures and deadlocks are retried up to the configured
// number of times.
func (t *postgresTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := SQLTx(ctx); ok {
		return fn(ctx)
	}

	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".WithinTransaction")
	defer scope.End()
	defer scope.TraceIfError(err)

	for attempt := 0; ; attempt++ {
		err = t.run(ctx, fn)
		if err == nil || !isRetryable(err) || attempt >= t.maxRetry {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt+1).Msg("transaction aborted by the database, retrying")
	}
}

func (t *postgresTransactor) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(withSQLTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	code := string(pqErr.Code)

	return code == constant.PqErrorCodeSerializationFailure || code == constant.PqErrorCodeDeadlockDetected
}
