package handler

import (
	"context"

	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	RegisterBook(ctx context.Context, req model.RegisterBookRequest) (model.Book, error)
	GetBook(ctx context.Context, bookID string) (model.Book, error)
	RemoveBook(ctx context.Context, bookID, ownerID string) error
	BooksHeldBy(ctx context.Context, memberID string) (model.ListBooks, error)
	BooksOwnedBy(ctx context.Context, memberID string) (model.ListBooks, error)

	RequestBorrow(ctx context.Context, bookID, memberID string) (model.BorrowResult, error)
	MarkDoneReading(ctx context.Context, bookID, holderID string) (model.DoneReadingResult, error)

	Queue(ctx context.Context, bookID string) (model.QueueSnapshot, error)
	JoinQueue(ctx context.Context, bookID, memberID string) (model.QueueEntry, error)
	LeaveQueue(ctx context.Context, bookID, memberID string) error

	HandoffStatus(ctx context.Context, handoffID, viewerID string) (model.HandoffStatus, error)
	ConfirmHandoff(ctx context.Context, handoffID, memberID string, role model.Role) (model.Handoff, error)
	CancelHandoff(ctx context.Context, handoffID, requesterID string) (model.Handoff, error)
	FinalizeHandoff(ctx context.Context, handoffID string) (model.Handoff, error)
	ActiveHandoffs(ctx context.Context, memberID string) ([]model.Handoff, error)

	UpsertMember(ctx context.Context, member model.Member) error
}

var _ LendingService = (*service.Service)(nil)
