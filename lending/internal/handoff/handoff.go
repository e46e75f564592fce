// Package handoff implements the two-party custody transfer.
//
// A handoff row moves OPENED -> GIVER_CONFIRMED | RECEIVER_CONFIRMED -> BOTH_CONFIRMED.
// Every move is a compare-and-swap on the stored state, and the move into BOTH_CONFIRMED
// commits together with the book and queue updates that complete the transfer.
package handoff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/queue"
	"github.com/Astemirdum/book-circle/lending/internal/registry"
	"github.com/Astemirdum/book-circle/lending/internal/repository"
)

const DefaultLoanPeriod = 14 * 24 * time.Hour

type Protocol struct {
	repo       repository.Repository
	books      *registry.Registry
	queue      *queue.Manager
	loanPeriod time.Duration
	log        *zap.Logger
	now        func() time.Time
}

func New(repo repository.Repository, books *registry.Registry, q *queue.Manager, loanPeriod time.Duration, log *zap.Logger) *Protocol {
	if loanPeriod <= 0 {
		loanPeriod = DefaultLoanPeriod
	}
	return &Protocol{
		repo:       repo,
		books:      books,
		queue:      q,
		loanPeriod: loanPeriod,
		log:        log.Named("handoff"),
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Open starts a transfer of a book that is ready_for_next with receiverID as its next recipient.
// prior is the status the book returns to if the handoff is cancelled.
func (p *Protocol) Open(ctx context.Context, bookID, giverID, receiverID string, prior model.Status) (model.Handoff, error) {
	if giverID == receiverID {
		return model.Handoff{}, errs.ErrSameParty
	}
	var h model.Handoff
	err := p.repo.Tx(ctx, func(ctx context.Context) error {
		book, err := p.books.Get(ctx, bookID)
		if err != nil {
			return err
		}
		if active, err := p.repo.GetActiveHandoff(ctx, bookID); err == nil {
			return errors.Wrapf(errs.ErrAlreadyOpen, "book %s has handoff %s", bookID, active.ID)
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if book.Status != model.StatusReadyForNext || book.NextRecipient() != receiverID {
			return errors.Wrapf(errs.ErrInvalidState, "book %s is %s for %q", bookID, book.Status, book.NextRecipient())
		}
		if book.CurrentHolderID != giverID {
			return errors.Wrapf(errs.ErrForbidden, "member %s does not hold book %s", giverID, bookID)
		}

		h, err = p.repo.CreateHandoff(ctx, model.Handoff{
			ID:          uuid.NewString(),
			BookID:      bookID,
			GiverID:     giverID,
			ReceiverID:  receiverID,
			State:       model.HandoffOpened,
			PriorStatus: prior,
		})
		if err != nil {
			return err
		}
		next := book.Keep()
		next.Status = model.StatusInHandoff
		_, err = p.books.Transition(ctx, book, next)
		return err
	})
	if err != nil {
		return model.Handoff{}, err
	}
	p.log.Info("handoff opened", zap.String("id", h.ID), zap.String("book", bookID),
		zap.String("giver", giverID), zap.String("receiver", receiverID))
	return h, nil
}

// Confirm records memberID's confirmation as role. A repeated confirmation is a no-op;
// changed reports whether this call moved the handoff.
func (p *Protocol) Confirm(ctx context.Context, handoffID, memberID string, role model.Role) (h model.Handoff, changed bool, err error) {
	err = p.repo.Tx(ctx, func(ctx context.Context) error {
		cur, err := p.repo.GetHandoff(ctx, handoffID)
		if err != nil {
			return err
		}
		if actual, ok := cur.MemberRole(memberID); !ok || actual != role {
			return errors.Wrapf(errs.ErrForbidden, "member %s is not the %s of handoff %s", memberID, role, handoffID)
		}
		if cur.Confirmed(role) {
			h = cur
			return nil
		}

		next := confirmed(cur, role, p.now())
		updated, err := p.repo.CompareAndSwapHandoff(ctx, cur.ID, cur.State, next)
		if errors.Is(err, errs.ErrConflict) {
			// someone moved the row since it was read; a duplicate tap of the same party is fine
			again, rerr := p.repo.GetHandoff(ctx, handoffID)
			if rerr != nil {
				return rerr
			}
			if again.Confirmed(role) {
				h = again
				return nil
			}
			// the other party confirmed first. It can move the row only once, so one more swap settles it.
			updated, err = p.repo.CompareAndSwapHandoff(ctx, again.ID, again.State, confirmed(again, role, p.now()))
		}
		if err != nil {
			return err
		}
		if updated.Terminal() {
			if err := p.finalize(ctx, updated); err != nil {
				return err
			}
		}
		h, changed = updated, true
		return nil
	})
	if err != nil {
		return model.Handoff{}, false, err
	}
	if changed {
		p.log.Info("handoff confirmed", zap.String("id", h.ID), zap.String("role", string(role)),
			zap.String("state", string(h.State)))
	}
	return h, changed, nil
}

func confirmed(h model.Handoff, role model.Role, at time.Time) model.Handoff {
	if role == model.RoleGiver {
		h.GiverConfirmedAt = &at
	} else {
		h.ReceiverConfirmedAt = &at
	}
	switch {
	case h.GiverConfirmedAt != nil && h.ReceiverConfirmedAt != nil:
		h.State = model.HandoffBothConfirmed
		h.CompletedAt = &at
	case h.GiverConfirmedAt != nil:
		h.State = model.HandoffGiverConfirmed
	default:
		h.State = model.HandoffReceiverConfirmed
	}
	return h
}

// finalize hands the book to the receiver. It runs in the transaction that made h terminal.
func (p *Protocol) finalize(ctx context.Context, h model.Handoff) error {
	book, err := p.books.Get(ctx, h.BookID)
	if err != nil {
		return err
	}
	if book.Status != model.StatusInHandoff || book.CurrentHolderID != h.GiverID || book.NextRecipient() != h.ReceiverID {
		return errors.Wrapf(errs.ErrConflict, "book %s is %s with %s, not in handoff %s", book.ID, book.Status, book.CurrentHolderID, h.ID)
	}

	fromQueue, err := p.queue.Remove(ctx, book.ID, h.ReceiverID)
	if err != nil {
		return err
	}
	waiting, err := p.queue.List(ctx, book.ID)
	if err != nil {
		return err
	}

	next := model.BookTransition{
		Status:          model.StatusAvailable,
		CurrentHolderID: h.ReceiverID,
	}
	switch {
	case h.ReceiverID == book.OwnerID:
	case fromQueue && len(waiting) == 0:
	default:
		now := p.now()
		due := now.Add(p.loanPeriod)
		next.Status = model.StatusBorrowed
		next.BorrowedAt, next.DueDate = &now, &due
	}
	updated, err := p.books.Transition(ctx, book, next)
	if err != nil {
		return err
	}
	p.log.Info("handoff finalized", zap.String("id", h.ID), zap.String("book", book.ID),
		zap.String("holder", updated.CurrentHolderID), zap.String("status", string(updated.Status)),
		zap.Bool("from_queue", fromQueue))
	return nil
}

// Finalize is the re-entrant form of the completion step: it succeeds without side effects
// on a completed handoff and refuses one that still misses a confirmation.
func (p *Protocol) Finalize(ctx context.Context, handoffID string) (model.Handoff, error) {
	h, err := p.repo.GetHandoff(ctx, handoffID)
	if err != nil {
		return model.Handoff{}, err
	}
	if !h.Terminal() {
		return model.Handoff{}, errors.Wrapf(errs.ErrInvalidState, "handoff %s is %s", handoffID, h.State)
	}
	return h, nil
}

// Cancel aborts an unfinished handoff and puts the book back the way it was before it opened.
func (p *Protocol) Cancel(ctx context.Context, handoffID, requesterID string) (model.Handoff, error) {
	var h model.Handoff
	err := p.repo.Tx(ctx, func(ctx context.Context) error {
		var err error
		h, err = p.repo.GetHandoff(ctx, handoffID)
		if err != nil {
			return err
		}
		if _, ok := h.MemberRole(requesterID); !ok {
			return errors.Wrapf(errs.ErrForbidden, "member %s is not a party of handoff %s", requesterID, handoffID)
		}
		if h.Terminal() {
			return errors.Wrapf(errs.ErrInvalidState, "handoff %s is complete", handoffID)
		}

		if err := p.repo.DeleteHandoff(ctx, h.ID, h.State); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				if cur, rerr := p.repo.GetHandoff(ctx, handoffID); rerr == nil && cur.Terminal() {
					return errors.Wrapf(errs.ErrInvalidState, "handoff %s completed first", handoffID)
				}
			}
			return err
		}
		// a receiver who backs out gives up their place in line
		if requesterID == h.ReceiverID {
			if _, err := p.queue.Remove(ctx, h.BookID, requesterID); err != nil {
				return err
			}
		}

		book, err := p.books.Get(ctx, h.BookID)
		if err != nil {
			return err
		}
		revert := book.Keep()
		revert.Status = h.PriorStatus
		revert.NextRecipientID = nil
		_, err = p.books.Transition(ctx, book, revert)
		return err
	})
	if err != nil {
		return model.Handoff{}, err
	}
	p.log.Info("handoff cancelled", zap.String("id", h.ID), zap.String("by", requesterID),
		zap.String("book", h.BookID), zap.String("reverted_to", string(h.PriorStatus)))
	return h, nil
}

func (p *Protocol) Get(ctx context.Context, handoffID string) (model.Handoff, error) {
	return p.repo.GetHandoff(ctx, handoffID)
}

// Active returns the in-flight handoff of a book, or errs.ErrNotFound.
func (p *Protocol) Active(ctx context.Context, bookID string) (model.Handoff, error) {
	return p.repo.GetActiveHandoff(ctx, bookID)
}

func (p *Protocol) ListForMember(ctx context.Context, memberID string, activeOnly bool) ([]model.Handoff, error) {
	return p.repo.ListHandoffsByMember(ctx, memberID, activeOnly)
}

// Stale lists unfinished handoffs opened more than olderThan ago.
func (p *Protocol) Stale(ctx context.Context, olderThan time.Duration) ([]model.Handoff, error) {
	return p.repo.ListStaleHandoffs(ctx, p.now().Add(-olderThan))
}
