package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
)

var bookColumns = []string{
	"id", "owner_id", "title", "author", "isbn", "cover_url", "status",
	"current_holder_id", "next_recipient_id", "borrowed_at", "due_date",
	"created_at", "updated_at", "removed_at",
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	now := r.now()
	book.CreatedAt, book.UpdatedAt = now, now
	_, err := r.exec(ctx, r.qb.Insert(booksTableName).
		Columns("id", "owner_id", "title", "author", "isbn", "cover_url", "status",
			"current_holder_id", "next_recipient_id", "borrowed_at", "due_date", "created_at", "updated_at").
		Values(book.ID, book.OwnerID, book.Title, book.Author, book.ISBN, book.CoverURL, book.Status,
			book.CurrentHolderID, nullable(book.NextRecipientID), nullable(book.BorrowedAt), nullable(book.DueDate),
			book.CreatedAt, book.UpdatedAt))
	if err != nil {
		r.log.Error("CreateBook", zap.String("id", book.ID), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "insert book")
	}
	return r.GetBook(ctx, book.ID)
}

func (r *repository) GetBook(ctx context.Context, id string) (model.Book, error) {
	var book model.Book
	err := r.get(ctx, &book, r.qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id, "removed_at": nil}).
		Limit(1))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrapf(errs.ErrNotFound, "book %s", id)
		}
		return model.Book{}, err
	}
	return book, nil
}

// CompareAndSwapBook writes next only while the stored status still equals expected.
func (r *repository) CompareAndSwapBook(ctx context.Context, id string, expected model.Status, next model.BookTransition) (model.Book, error) {
	n, err := r.exec(ctx, r.qb.Update(booksTableName).
		Set("status", next.Status).
		Set("current_holder_id", next.CurrentHolderID).
		Set("next_recipient_id", nullable(next.NextRecipientID)).
		Set("borrowed_at", nullable(next.BorrowedAt)).
		Set("due_date", nullable(next.DueDate)).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id, "status": expected, "removed_at": nil}))
	if err != nil {
		return model.Book{}, errors.Wrap(err, "cas book")
	}
	if n == 0 {
		return model.Book{}, r.bookCASFailure(ctx, id, expected)
	}
	return r.GetBook(ctx, id)
}

func (r *repository) bookCASFailure(ctx context.Context, id string, expected model.Status) error {
	cur, err := r.GetBook(ctx, id)
	if err != nil {
		return err
	}
	r.log.Info("book cas conflict", zap.String("id", id),
		zap.String("expected", string(expected)), zap.String("actual", string(cur.Status)))
	return errors.Wrapf(errs.ErrConflict, "book %s: expected %s, got %s", id, expected, cur.Status)
}

func (r *repository) RemoveBook(ctx context.Context, id string, expected model.Status) error {
	n, err := r.exec(ctx, r.qb.Update(booksTableName).
		Set("removed_at", r.now()).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id, "status": expected, "removed_at": nil}))
	if err != nil {
		return errors.Wrap(err, "remove book")
	}
	if n == 0 {
		return r.bookCASFailure(ctx, id, expected)
	}
	return nil
}

func (r *repository) ListBooksByHolder(ctx context.Context, memberID string) ([]model.Book, error) {
	return r.listBooks(ctx, sq.Eq{"current_holder_id": memberID})
}

func (r *repository) ListBooksByOwner(ctx context.Context, memberID string) ([]model.Book, error) {
	return r.listBooks(ctx, sq.Eq{"owner_id": memberID})
}

func (r *repository) listBooks(ctx context.Context, where sq.Eq) ([]model.Book, error) {
	books := make([]model.Book, 0)
	err := r.selectAll(ctx, &books, r.qb.Select(bookColumns...).
		From(booksTableName).
		Where(where).
		Where(sq.Eq{"removed_at": nil}).
		OrderBy("created_at", "id"))
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	return books, nil
}
