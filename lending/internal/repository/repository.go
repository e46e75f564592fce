package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/pkg/db"
)

type Repository interface {
	// Tx runs fn inside one transaction; nested calls join the outer one.
	Tx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	CompareAndSwapBook(ctx context.Context, id string, expected model.Status, next model.BookTransition) (model.Book, error)
	RemoveBook(ctx context.Context, id string, expected model.Status) error
	ListBooksByHolder(ctx context.Context, memberID string) ([]model.Book, error)
	ListBooksByOwner(ctx context.Context, memberID string) ([]model.Book, error)

	InsertQueueEntry(ctx context.Context, bookID, memberID string, joinedAt time.Time) (model.QueueEntry, error)
	DeleteQueueEntry(ctx context.Context, bookID, memberID string) (bool, error)
	ListQueue(ctx context.Context, bookID string) ([]model.QueueEntry, error)

	CreateHandoff(ctx context.Context, h model.Handoff) (model.Handoff, error)
	GetHandoff(ctx context.Context, id string) (model.Handoff, error)
	GetActiveHandoff(ctx context.Context, bookID string) (model.Handoff, error)
	CompareAndSwapHandoff(ctx context.Context, id string, expected model.HandoffState, next model.Handoff) (model.Handoff, error)
	DeleteHandoff(ctx context.Context, id string, expected model.HandoffState) error
	ListHandoffsByMember(ctx context.Context, memberID string, activeOnly bool) ([]model.Handoff, error)
	ListStaleHandoffs(ctx context.Context, createdBefore time.Time) ([]model.Handoff, error)

	GetMember(ctx context.Context, id string) (model.Member, error)
	UpsertMember(ctx context.Context, m model.Member) error
}

type repository struct {
	db  *sqlx.DB
	qb  sq.StatementBuilderType
	log *zap.Logger
	now func() time.Time
}

func NewRepository(conn *sqlx.DB, driver db.Driver, log *zap.Logger) (*repository, error) {
	if conn == nil {
		return nil, errors.New("nil db")
	}
	return &repository{
		db:  conn,
		qb:  sq.StatementBuilder.PlaceholderFormat(db.Placeholder(driver)),
		log: log.Named("repo"),
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}, nil
}

const (
	booksTableName   = `books`
	queueTableName   = `queue_entries`
	handoffTableName = `handoffs`
	memberTableName  = `members`
)

type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type txKey struct{}

func (r *repository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.db
}

func (r *repository) Tx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.log.Warn("tx rollback", zap.Error(rbErr))
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

func (r *repository) get(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	q, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "build query")
	}
	if err := r.conn(ctx).GetContext(ctx, dest, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		r.log.Error("get", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) selectAll(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	q, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "build query")
	}
	r.log.Debug("select", zap.String("q", q), zap.Any("args", args))
	return r.conn(ctx).SelectContext(ctx, dest, q, args...)
}

// exec returns the number of affected rows.
func (r *repository) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build query")
	}
	res, err := r.conn(ctx).ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// nullable unwraps optional fields so every driver sees a plain value or NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
