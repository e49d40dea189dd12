package db

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	ot "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// ITx is the common query surface shared by the root connection and an open
// transaction, so query helpers may be used in both scopes.
type ITx interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Db wraps sql connection pool
type Db struct {
	*sql.DB
}

// New opens postgres connection using given uri and pings it
func New(uri string) (*Db, error) {
	conn, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, errors.Wrap(err, "db: open failed")
	}
	if err = conn.Ping(); err != nil {
		return nil, errors.Wrap(err, "db: ping failed")
	}
	return &Db{DB: conn}, nil
}

// Tx runs cb inside transaction which will be rolled back on error or panic,
// committed otherwise.
func (d *Db) Tx(cb func(tx ITx) error) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = cb(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// TxCtx same as Tx but also wraps transaction with instrumentation using opentracing
func (d *Db) TxCtx(ctx context.Context, cb func(ctx context.Context, tx ITx) error) error {
	span, cCtx := ot.StartSpanFromContext(ctx, "transaction")
	defer span.Finish()

	tx, err := d.BeginTx(cCtx, nil)
	if err != nil {
		span.LogKV("open_tx_err", err)
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			span.LogKV("panic", p)
			tx.Rollback()
			panic(p)
		}
	}()

	if err = cb(cCtx, tx); err != nil {
		span.LogKV("cb_err", err)
		tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		span.LogKV("commit_err", err)
		return err
	}
	return nil
}
