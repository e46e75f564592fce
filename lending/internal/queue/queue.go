// Package queue keeps the per-book waiting lists.
//
// Entries are stored with a sparse insertion sequence. Order is FIFO by join time with the
// sequence as the tie breaker, and positions are renumbered 1..N on every read.
package queue

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/repository"
)

type Manager struct {
	repo repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func New(repo repository.Repository, log *zap.Logger) *Manager {
	return &Manager{
		repo: repo,
		log:  log.Named("queue"),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Join appends memberID to the book's queue and returns the entry with its position.
func (m *Manager) Join(ctx context.Context, bookID, memberID string) (model.QueueEntry, error) {
	if memberID == "" {
		return model.QueueEntry{}, errs.ErrMemberID
	}
	var entry model.QueueEntry
	err := m.repo.Tx(ctx, func(ctx context.Context) error {
		book, err := m.repo.GetBook(ctx, bookID)
		if err != nil {
			return err
		}
		switch {
		case book.CurrentHolderID == memberID:
			return errors.Wrapf(errs.ErrInvalidState, "member %s already holds book %s", memberID, bookID)
		case book.NextRecipient() == memberID:
			return errors.Wrapf(errs.ErrAlreadyOpen, "member %s is already the next recipient of book %s", memberID, bookID)
		}
		entries, err := m.list(ctx, bookID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.MemberID == memberID {
				return errors.Wrapf(errs.ErrAlreadyQueued, "member %s book %s", memberID, bookID)
			}
		}
		if len(entries) == 0 && offeredDirectly(book) {
			return errors.Wrapf(errs.ErrInvalidState, "book %s is %s, request it directly", bookID, book.Status)
		}

		// the no-op swap serializes joiners on the book row
		if _, err := m.repo.CompareAndSwapBook(ctx, book.ID, book.Status, book.Keep()); err != nil {
			return err
		}
		inserted, err := m.repo.InsertQueueEntry(ctx, bookID, memberID, m.now())
		if err != nil {
			return err
		}
		entries = order(append(entries, inserted))
		for _, e := range entries {
			if e.MemberID == memberID {
				entry = e
				break
			}
		}
		return nil
	})
	if err != nil {
		return model.QueueEntry{}, err
	}
	m.log.Debug("joined", zap.String("book", bookID), zap.String("member", memberID), zap.Int("position", entry.Position))
	return entry, nil
}

// offeredDirectly reports whether a requester should get the book through a handoff
// instead of waiting.
func offeredDirectly(book model.Book) bool {
	return book.Status == model.StatusAvailable ||
		(book.Status == model.StatusReadyForNext && book.NextRecipientID == nil)
}

// Leave drops memberID from the queue. The receiver of an open handoff has to cancel it instead.
func (m *Manager) Leave(ctx context.Context, bookID, memberID string) error {
	return m.repo.Tx(ctx, func(ctx context.Context) error {
		book, err := m.repo.GetBook(ctx, bookID)
		if err != nil {
			return err
		}
		if book.NextRecipient() == memberID {
			return errors.Wrapf(errs.ErrAlreadyOpen, "book %s is being handed to %s", bookID, memberID)
		}
		removed, err := m.Remove(ctx, bookID, memberID)
		if err != nil {
			return err
		}
		if !removed {
			return errors.Wrapf(errs.ErrNotFound, "member %s is not queued for book %s", memberID, bookID)
		}
		return nil
	})
}

// Remove deletes memberID's entry and reports whether there was one.
func (m *Manager) Remove(ctx context.Context, bookID, memberID string) (bool, error) {
	return m.repo.DeleteQueueEntry(ctx, bookID, memberID)
}

func (m *Manager) PeekNext(ctx context.Context, bookID string) (string, bool, error) {
	entries, err := m.list(ctx, bookID)
	if err != nil || len(entries) == 0 {
		return "", false, err
	}
	return entries[0].MemberID, true, nil
}

// PopNext removes and returns the head of the queue.
func (m *Manager) PopNext(ctx context.Context, bookID string) (head string, ok bool, err error) {
	err = m.repo.Tx(ctx, func(ctx context.Context) error {
		head, ok, err = m.PeekNext(ctx, bookID)
		if err != nil || !ok {
			return err
		}
		removed, err := m.repo.DeleteQueueEntry(ctx, bookID, head)
		if err != nil {
			return err
		}
		if !removed {
			return errors.Wrapf(errs.ErrConflict, "queue head of book %s moved", bookID)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return head, ok, nil
}

func (m *Manager) List(ctx context.Context, bookID string) ([]model.QueueEntry, error) {
	return m.list(ctx, bookID)
}

func (m *Manager) list(ctx context.Context, bookID string) ([]model.QueueEntry, error) {
	entries, err := m.repo.ListQueue(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return order(entries), nil
}

func order(entries []model.QueueEntry) []model.QueueEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		return a.Seq < b.Seq
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
