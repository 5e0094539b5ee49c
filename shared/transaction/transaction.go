// Package transaction runs a unit of work atomically across repositories.
//
// Repositories built on shared/repository and shared/docstore join the
// transaction carried by the context they receive, so a service only passes
// the callback context down:
//
//	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
//		room, err := rooms.GetForUpdate(ctx, filter)
//		...
//		return bookings.Insert(ctx, booking)
//	})
//
// A nested call joins the outer transaction instead of opening a new one.
package transaction

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type sqlTxKey struct{}

// SQLTx returns the relational transaction bound to ctx, if any.
func SQLTx(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(sqlTxKey{}).(*sqlx.Tx)

	return tx, ok && tx != nil
}

func withSQLTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, sqlTxKey{}, tx)
}
