package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/metrics"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/registry"
)

func (s *Service) RegisterBook(ctx context.Context, req model.RegisterBookRequest) (model.Book, error) {
	in := registry.RegisterBook{
		OwnerID: req.OwnerID,
		Title:   req.Title,
		Author:  req.Author,
		ISBN:    req.ISBN,
	}
	if s.metadata != nil && req.ISBN != "" {
		md, err := s.metadata.Lookup(ctx, req.ISBN)
		switch {
		case err != nil:
			s.log.Info("metadata lookup", zap.String("isbn", req.ISBN), zap.Error(err))
		default:
			in.CoverURL = md.CoverURL
			if in.Author == "" {
				in.Author = md.Author
			}
		}
	}
	book, err := s.books.Register(ctx, in)
	if err != nil {
		return model.Book{}, err
	}
	metrics.BooksRegisteredTotal.Inc()
	return book, nil
}

func (s *Service) GetBook(ctx context.Context, bookID string) (model.Book, error) {
	return s.books.Get(ctx, bookID)
}

// RemoveBook takes a book out of circulation. Only an owner holding an unclaimed book may do it.
func (s *Service) RemoveBook(ctx context.Context, bookID, ownerID string) error {
	return s.observe("remove_book", s.repo.Tx(ctx, func(ctx context.Context) error {
		waiting, err := s.queue.List(ctx, bookID)
		if err != nil {
			return err
		}
		if len(waiting) > 0 {
			return errors.Wrapf(errs.ErrInvalidState, "book %s has %d members waiting", bookID, len(waiting))
		}
		return s.books.Remove(ctx, bookID, ownerID)
	}))
}

// offeredDirectly reports whether a requester is handed the book instead of queued.
func offeredDirectly(book model.Book, waiting int) bool {
	if waiting > 0 {
		return false
	}
	return book.Status == model.StatusAvailable ||
		(book.Status == model.StatusReadyForNext && book.NextRecipientID == nil)
}

// priorStatus is what the book reverts to when the handoff about to open is cancelled.
func priorStatus(book model.Book) model.Status {
	if book.Status == model.StatusAvailable {
		return model.StatusAvailable
	}
	return model.StatusReadyForNext
}

// RequestBorrow hands an unclaimed book to memberID through a new handoff, or queues memberID.
func (s *Service) RequestBorrow(ctx context.Context, bookID, memberID string) (model.BorrowResult, error) {
	if memberID == "" {
		return model.BorrowResult{}, errs.ErrMemberID
	}
	var res model.BorrowResult
	err := s.repo.Tx(ctx, func(ctx context.Context) error {
		book, err := s.books.Get(ctx, bookID)
		if err != nil {
			return err
		}
		switch {
		case book.CurrentHolderID == memberID:
			return errors.Wrapf(errs.ErrInvalidState, "member %s already holds book %s", memberID, bookID)
		case book.NextRecipient() == memberID:
			return errors.Wrapf(errs.ErrAlreadyOpen, "book %s is already on its way to %s", bookID, memberID)
		}
		waiting, err := s.queue.List(ctx, bookID)
		if err != nil {
			return err
		}

		if !offeredDirectly(book, len(waiting)) {
			entry, err := s.queue.Join(ctx, bookID, memberID)
			if err != nil {
				return err
			}
			res = model.BorrowResult{Book: book, Queue: &entry}
			return nil
		}

		h, book, err := s.offer(ctx, book, memberID)
		if err != nil {
			return err
		}
		res = model.BorrowResult{Book: book, Handoff: &h}
		return nil
	})
	if err != nil {
		return model.BorrowResult{}, s.observe("request_borrow", err)
	}

	if res.Handoff != nil {
		metrics.HandoffsOpenedTotal.Inc()
		s.notify(ctx, model.NotifyHandoffOpened, handoffPayload(*res.Handoff), res.Handoff.GiverID, res.Handoff.ReceiverID)
	} else {
		s.queued(ctx, res.Book, *res.Queue)
	}
	return res, nil
}

// offer names recipientID as the next recipient of book and opens the handoff from its holder.
func (s *Service) offer(ctx context.Context, book model.Book, recipientID string) (model.Handoff, model.Book, error) {
	prior := priorStatus(book)
	next := book.Keep()
	next.Status = model.StatusReadyForNext
	next.NextRecipientID = &recipientID
	book, err := s.books.Transition(ctx, book, next)
	if err != nil {
		return model.Handoff{}, model.Book{}, err
	}
	h, err := s.handoffs.Open(ctx, book.ID, book.CurrentHolderID, recipientID, prior)
	if err != nil {
		return model.Handoff{}, model.Book{}, err
	}
	book, err = s.books.Get(ctx, book.ID)
	if err != nil {
		return model.Handoff{}, model.Book{}, err
	}
	return h, book, nil
}

func (s *Service) queued(ctx context.Context, book model.Book, entry model.QueueEntry) {
	metrics.QueueJoinsTotal.Inc()
	s.notify(ctx, model.NotifyQueueJoined, map[string]any{
		"bookId":   book.ID,
		"memberId": entry.MemberID,
		"position": entry.Position,
	}, entry.MemberID, book.CurrentHolderID)
}

// MarkDoneReading offers the book to the head of its queue. With nobody waiting the book
// stays with its holder as ready_for_next until someone requests it.
func (s *Service) MarkDoneReading(ctx context.Context, bookID, holderID string) (model.DoneReadingResult, error) {
	var res model.DoneReadingResult
	err := s.repo.Tx(ctx, func(ctx context.Context) error {
		book, err := s.books.Get(ctx, bookID)
		if err != nil {
			return err
		}
		if book.CurrentHolderID != holderID {
			return errors.Wrapf(errs.ErrForbidden, "member %s does not hold book %s", holderID, bookID)
		}
		if book.Status == model.StatusInHandoff || book.NextRecipientID != nil {
			return errors.Wrapf(errs.ErrAlreadyOpen, "book %s is already being handed to %s", bookID, book.NextRecipient())
		}

		head, ok, err := s.queue.PeekNext(ctx, bookID)
		if err != nil {
			return err
		}
		if ok {
			h, book, err := s.offer(ctx, book, head)
			if err != nil {
				return err
			}
			res = model.DoneReadingResult{Book: book, Handoff: &h}
			return nil
		}

		switch {
		case book.Status == model.StatusReadyForNext:
			res = model.DoneReadingResult{Book: book}
			return nil
		case book.CurrentHolderID == book.OwnerID:
			return errors.Wrapf(errs.ErrInvalidState, "book %s is already back with its owner", bookID)
		}
		next := book.Keep()
		next.Status = model.StatusReadyForNext
		book, err = s.books.Transition(ctx, book, next)
		if err != nil {
			return err
		}
		res = model.DoneReadingResult{Book: book}
		return nil
	})
	if err != nil {
		return model.DoneReadingResult{}, s.observe("mark_done_reading", err)
	}
	if res.Handoff != nil {
		metrics.HandoffsOpenedTotal.Inc()
		s.notify(ctx, model.NotifyHandoffOpened, handoffPayload(*res.Handoff), res.Handoff.GiverID, res.Handoff.ReceiverID)
	}
	return res, nil
}

func (s *Service) ConfirmHandoff(ctx context.Context, handoffID, memberID string, role model.Role) (model.Handoff, error) {
	h, changed, err := s.handoffs.Confirm(ctx, handoffID, memberID, role)
	if err != nil {
		return model.Handoff{}, s.observe("confirm_handoff", err)
	}
	if !changed {
		return h, nil
	}
	if h.Terminal() {
		metrics.HandoffsCompletedTotal.Inc()
		s.notify(ctx, model.NotifyHandoffCompleted, handoffPayload(h), h.GiverID, h.ReceiverID)
		return h, nil
	}
	other := h.GiverID
	if role == model.RoleGiver {
		other = h.ReceiverID
	}
	s.notify(ctx, model.NotifyHandoffConfirmed, handoffPayload(h), other)
	return h, nil
}

func (s *Service) CancelHandoff(ctx context.Context, handoffID, requesterID string) (model.Handoff, error) {
	h, err := s.handoffs.Cancel(ctx, handoffID, requesterID)
	if err != nil {
		return model.Handoff{}, s.observe("cancel_handoff", err)
	}
	metrics.HandoffsCancelledTotal.Inc()
	other := h.GiverID
	if requesterID == h.GiverID {
		other = h.ReceiverID
	}
	payload := handoffPayload(h)
	payload["cancelledBy"] = requesterID
	s.notify(ctx, model.NotifyHandoffCancelled, payload, other)
	return h, nil
}

// FinalizeHandoff re-runs completion for a handoff; it never repeats the transfer.
func (s *Service) FinalizeHandoff(ctx context.Context, handoffID string) (model.Handoff, error) {
	return s.handoffs.Finalize(ctx, handoffID)
}

func (s *Service) JoinQueue(ctx context.Context, bookID, memberID string) (model.QueueEntry, error) {
	entry, err := s.queue.Join(ctx, bookID, memberID)
	if err != nil {
		return model.QueueEntry{}, s.observe("join_queue", err)
	}
	book, err := s.books.Get(ctx, bookID)
	if err == nil {
		s.queued(ctx, book, entry)
	}
	return entry, nil
}

func (s *Service) LeaveQueue(ctx context.Context, bookID, memberID string) error {
	return s.queue.Leave(ctx, bookID, memberID)
}

func (s *Service) Queue(ctx context.Context, bookID string) (model.QueueSnapshot, error) {
	if _, err := s.books.Get(ctx, bookID); err != nil {
		return model.QueueSnapshot{}, err
	}
	items, err := s.queue.List(ctx, bookID)
	if err != nil {
		return model.QueueSnapshot{}, err
	}
	return model.QueueSnapshot{BookID: bookID, Items: items}, nil
}

func (s *Service) BooksHeldBy(ctx context.Context, memberID string) (model.ListBooks, error) {
	items, err := s.books.ListHeldBy(ctx, memberID)
	if err != nil {
		return model.ListBooks{}, err
	}
	return model.ListBooks{Items: items}, nil
}

func (s *Service) BooksOwnedBy(ctx context.Context, memberID string) (model.ListBooks, error) {
	items, err := s.books.ListOwnedBy(ctx, memberID)
	if err != nil {
		return model.ListBooks{}, err
	}
	return model.ListBooks{Items: items}, nil
}
