// Package registry owns book identity and possession. Every possession change is a
// compare-and-swap on the stored status.
package registry

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/repository"
)

type Registry struct {
	repo repository.Repository
	log  *zap.Logger
}

func New(repo repository.Repository, log *zap.Logger) *Registry {
	return &Registry{
		repo: repo,
		log:  log.Named("registry"),
	}
}

type RegisterBook struct {
	OwnerID  string
	Title    string
	Author   string
	ISBN     string
	CoverURL string
}

func (r *Registry) Register(ctx context.Context, req RegisterBook) (model.Book, error) {
	if req.OwnerID == "" {
		return model.Book{}, errs.ErrMemberID
	}
	if strings.TrimSpace(req.Title) == "" {
		return model.Book{}, errors.Wrap(errs.ErrInvalidState, "title is required")
	}
	book, err := r.repo.CreateBook(ctx, model.Book{
		ID:              uuid.NewString(),
		OwnerID:         req.OwnerID,
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		CoverURL:        req.CoverURL,
		Status:          model.StatusAvailable,
		CurrentHolderID: req.OwnerID,
	})
	if err != nil {
		return model.Book{}, err
	}
	r.log.Debug("book registered", zap.String("book", book.ID), zap.String("owner", book.OwnerID))
	return book, nil
}

func (r *Registry) Get(ctx context.Context, id string) (model.Book, error) {
	return r.repo.GetBook(ctx, id)
}

// Transition moves book from the status it was observed in to next.
// A concurrent writer that got there first makes it fail with errs.ErrConflict.
func (r *Registry) Transition(ctx context.Context, book model.Book, next model.BookTransition) (model.Book, error) {
	if err := Validate(book.OwnerID, next); err != nil {
		return model.Book{}, errors.Wrapf(err, "book %s", book.ID)
	}
	updated, err := r.repo.CompareAndSwapBook(ctx, book.ID, book.Status, next)
	if err != nil {
		return model.Book{}, err
	}
	r.log.Debug("book transition",
		zap.String("book", book.ID),
		zap.String("from", string(book.Status)),
		zap.String("to", string(updated.Status)),
		zap.String("holder", updated.CurrentHolderID))
	return updated, nil
}

// Validate checks the possession invariants of a book owned by ownerID.
func Validate(ownerID string, next model.BookTransition) error {
	if next.CurrentHolderID == "" {
		return errors.Wrap(errs.ErrInvalidState, "holder must be set")
	}
	// the owner keeps possession while handing the book to a named recipient
	if next.CurrentHolderID == ownerID && next.Status != model.StatusAvailable && next.NextRecipientID == nil {
		return errors.Wrapf(errs.ErrInvalidState, "owner may only hold an available book, got %s", next.Status)
	}
	if next.NextRecipientID != nil {
		if next.Status != model.StatusReadyForNext && next.Status != model.StatusInHandoff {
			return errors.Wrapf(errs.ErrInvalidState, "next recipient set while %s", next.Status)
		}
		if *next.NextRecipientID == next.CurrentHolderID {
			return errs.ErrSameParty
		}
	}
	return nil
}

// Remove soft-deletes a book resting with its owner; handoff history keeps referencing it.
func (r *Registry) Remove(ctx context.Context, id, ownerID string) error {
	book, err := r.repo.GetBook(ctx, id)
	if err != nil {
		return err
	}
	if book.OwnerID != ownerID {
		return errors.Wrapf(errs.ErrForbidden, "book %s is not owned by %s", id, ownerID)
	}
	if book.Status != model.StatusAvailable || book.CurrentHolderID != ownerID {
		return errors.Wrapf(errs.ErrInvalidState, "book %s is %s with %s", id, book.Status, book.CurrentHolderID)
	}
	return r.repo.RemoveBook(ctx, id, book.Status)
}

func (r *Registry) ListHeldBy(ctx context.Context, memberID string) ([]model.Book, error) {
	return r.repo.ListBooksByHolder(ctx, memberID)
}

func (r *Registry) ListOwnedBy(ctx context.Context, memberID string) ([]model.Book, error) {
	return r.repo.ListBooksByOwner(ctx, memberID)
}
