package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
)

// InsertQueueEntry appends memberID with the next sparse sequence key of the book's queue.
// Callers serialize per book by touching the book row first.
func (r *repository) InsertQueueEntry(ctx context.Context, bookID, memberID string, joinedAt time.Time) (model.QueueEntry, error) {
	var seq int64
	if err := r.get(ctx, &seq, r.qb.Select("coalesce(max(seq), 0) + 1").
		From(queueTableName).
		Where(sq.Eq{"book_id": bookID})); err != nil {
		return model.QueueEntry{}, errors.Wrap(err, "next queue seq")
	}

	entry := model.QueueEntry{
		BookID:   bookID,
		MemberID: memberID,
		Seq:      seq,
		JoinedAt: joinedAt,
	}
	_, err := r.exec(ctx, r.qb.Insert(queueTableName).
		Columns("book_id", "member_id", "seq", "joined_at").
		Values(entry.BookID, entry.MemberID, entry.Seq, entry.JoinedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return model.QueueEntry{}, errors.Wrapf(errs.ErrAlreadyQueued, "member %s book %s", memberID, bookID)
		}
		return model.QueueEntry{}, errors.Wrap(err, "insert queue entry")
	}
	return entry, nil
}

func (r *repository) DeleteQueueEntry(ctx context.Context, bookID, memberID string) (bool, error) {
	n, err := r.exec(ctx, r.qb.Delete(queueTableName).
		Where(sq.Eq{"book_id": bookID, "member_id": memberID}))
	if err != nil {
		return false, errors.Wrap(err, "delete queue entry")
	}
	return n > 0, nil
}

// ListQueue returns the raw entries; ordering and positions belong to the queue package.
func (r *repository) ListQueue(ctx context.Context, bookID string) ([]model.QueueEntry, error) {
	entries := make([]model.QueueEntry, 0)
	err := r.selectAll(ctx, &entries, r.qb.Select("book_id", "member_id", "seq", "joined_at").
		From(queueTableName).
		Where(sq.Eq{"book_id": bookID}))
	if err != nil {
		return nil, errors.Wrap(err, "list queue")
	}
	return entries, nil
}
