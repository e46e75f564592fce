package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
)

var handoffColumns = []string{
	"id", "book_id", "giver_id", "receiver_id", "state", "prior_status",
	"giver_confirmed_at", "receiver_confirmed_at", "created_at", "updated_at", "completed_at",
}

func (r *repository) CreateHandoff(ctx context.Context, h model.Handoff) (model.Handoff, error) {
	now := r.now()
	h.CreatedAt, h.UpdatedAt = now, now
	_, err := r.exec(ctx, r.qb.Insert(handoffTableName).
		Columns("id", "book_id", "giver_id", "receiver_id", "state", "prior_status", "created_at", "updated_at").
		Values(h.ID, h.BookID, h.GiverID, h.ReceiverID, h.State, h.PriorStatus, h.CreatedAt, h.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Handoff{}, errors.Wrapf(errs.ErrAlreadyOpen, "book %s", h.BookID)
		}
		r.log.Error("CreateHandoff", zap.String("book", h.BookID), zap.Error(err))
		return model.Handoff{}, errors.Wrap(err, "insert handoff")
	}
	return r.GetHandoff(ctx, h.ID)
}

func (r *repository) GetHandoff(ctx context.Context, id string) (model.Handoff, error) {
	var h model.Handoff
	err := r.get(ctx, &h, r.qb.Select(handoffColumns...).
		From(handoffTableName).
		Where(sq.Eq{"id": id}).
		Limit(1))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Handoff{}, errors.Wrapf(errs.ErrNotFound, "handoff %s", id)
		}
		return model.Handoff{}, err
	}
	return h, nil
}

func (r *repository) GetActiveHandoff(ctx context.Context, bookID string) (model.Handoff, error) {
	var h model.Handoff
	err := r.get(ctx, &h, r.qb.Select(handoffColumns...).
		From(handoffTableName).
		Where(sq.Eq{"book_id": bookID}).
		Where(sq.NotEq{"state": model.HandoffBothConfirmed}).
		Limit(1))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Handoff{}, errors.Wrapf(errs.ErrNotFound, "active handoff for book %s", bookID)
		}
		return model.Handoff{}, err
	}
	return h, nil
}

// CompareAndSwapHandoff moves the confirmation record out of expected. A terminal record never matches.
func (r *repository) CompareAndSwapHandoff(ctx context.Context, id string, expected model.HandoffState, next model.Handoff) (model.Handoff, error) {
	if expected.Terminal() {
		return model.Handoff{}, errors.Wrapf(errs.ErrInvalidState, "handoff %s is terminal", id)
	}
	n, err := r.exec(ctx, r.qb.Update(handoffTableName).
		Set("state", next.State).
		Set("giver_confirmed_at", nullable(next.GiverConfirmedAt)).
		Set("receiver_confirmed_at", nullable(next.ReceiverConfirmedAt)).
		Set("completed_at", nullable(next.CompletedAt)).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id, "state": expected}))
	if err != nil {
		return model.Handoff{}, errors.Wrap(err, "cas handoff")
	}
	if n == 0 {
		return model.Handoff{}, r.handoffCASFailure(ctx, id, expected)
	}
	return r.GetHandoff(ctx, id)
}

func (r *repository) DeleteHandoff(ctx context.Context, id string, expected model.HandoffState) error {
	if expected.Terminal() {
		return errors.Wrapf(errs.ErrInvalidState, "handoff %s is terminal", id)
	}
	n, err := r.exec(ctx, r.qb.Delete(handoffTableName).
		Where(sq.Eq{"id": id, "state": expected}))
	if err != nil {
		return errors.Wrap(err, "delete handoff")
	}
	if n == 0 {
		return r.handoffCASFailure(ctx, id, expected)
	}
	return nil
}

func (r *repository) handoffCASFailure(ctx context.Context, id string, expected model.HandoffState) error {
	cur, err := r.GetHandoff(ctx, id)
	if err != nil {
		return err
	}
	r.log.Info("handoff cas conflict", zap.String("id", id),
		zap.String("expected", string(expected)), zap.String("actual", string(cur.State)))
	return errors.Wrapf(errs.ErrConflict, "handoff %s: expected %s, got %s", id, expected, cur.State)
}

func (r *repository) ListHandoffsByMember(ctx context.Context, memberID string, activeOnly bool) ([]model.Handoff, error) {
	q := r.qb.Select(handoffColumns...).
		From(handoffTableName).
		Where(sq.Or{sq.Eq{"giver_id": memberID}, sq.Eq{"receiver_id": memberID}}).
		OrderBy("created_at desc", "id")
	if activeOnly {
		q = q.Where(sq.NotEq{"state": model.HandoffBothConfirmed})
	}
	items := make([]model.Handoff, 0)
	if err := r.selectAll(ctx, &items, q); err != nil {
		return nil, errors.Wrap(err, "list handoffs")
	}
	return items, nil
}

func (r *repository) ListStaleHandoffs(ctx context.Context, createdBefore time.Time) ([]model.Handoff, error) {
	items := make([]model.Handoff, 0)
	err := r.selectAll(ctx, &items, r.qb.Select(handoffColumns...).
		From(handoffTableName).
		Where(sq.NotEq{"state": model.HandoffBothConfirmed}).
		Where(sq.Lt{"created_at": createdBefore.UTC()}).
		OrderBy("created_at", "id"))
	if err != nil {
		return nil, errors.Wrap(err, "list stale handoffs")
	}
	return items, nil
}
