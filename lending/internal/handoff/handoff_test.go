package handoff_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/handoff"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/queue"
	"github.com/Astemirdum/book-circle/lending/internal/registry"
	"github.com/Astemirdum/book-circle/lending/internal/testutil"
)

type env struct {
	books    *registry.Registry
	queue    *queue.Manager
	protocol *handoff.Protocol
}

func newEnv(t *testing.T) env {
	t.Helper()
	repo := testutil.NewRepository(t)
	log := zap.NewNop()
	books := registry.New(repo, log)
	q := queue.New(repo, log)
	return env{
		books:    books,
		queue:    q,
		protocol: handoff.New(repo, books, q, 7*24*time.Hour, log),
	}
}

// offered registers a book owned by "owner" and offers it to receiver.
func (e env) offered(t *testing.T, receiver string) model.Book {
	t.Helper()
	ctx := context.Background()
	book, err := e.books.Register(ctx, registry.RegisterBook{OwnerID: "owner", Title: "Dune"})
	require.NoError(t, err)
	book, err = e.books.Transition(ctx, book, model.BookTransition{
		Status:          model.StatusReadyForNext,
		CurrentHolderID: "owner",
		NextRecipientID: &receiver,
	})
	require.NoError(t, err)
	return book
}

func TestProtocol_Open(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	book := e.offered(t, "m1")

	_, err := e.protocol.Open(ctx, book.ID, "owner", "owner", model.StatusAvailable)
	require.ErrorIs(t, err, errs.ErrSameParty)
	_, err = e.protocol.Open(ctx, book.ID, "owner", "m2", model.StatusAvailable)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	_, err = e.protocol.Open(ctx, book.ID, "m3", "m1", model.StatusAvailable)
	require.ErrorIs(t, err, errs.ErrForbidden)

	h, err := e.protocol.Open(ctx, book.ID, "owner", "m1", model.StatusAvailable)
	require.NoError(t, err)
	require.Equal(t, model.HandoffOpened, h.State)
	require.Nil(t, h.GiverConfirmedAt)
	require.Nil(t, h.ReceiverConfirmedAt)

	got, err := e.books.Get(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusInHandoff, got.Status)
	require.Equal(t, "m1", got.NextRecipient())

	_, err = e.protocol.Open(ctx, book.ID, "owner", "m1", model.StatusAvailable)
	require.ErrorIs(t, err, errs.ErrAlreadyOpen)

	active, err := e.protocol.Active(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, h.ID, active.ID)
}

func TestProtocol_ConfirmBothOrders(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		order []model.Role
		mid   model.HandoffState
	}{
		{name: "giver first", order: []model.Role{model.RoleGiver, model.RoleReceiver}, mid: model.HandoffGiverConfirmed},
		{name: "receiver first", order: []model.Role{model.RoleReceiver, model.RoleGiver}, mid: model.HandoffReceiverConfirmed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			e := newEnv(t)
			book := e.offered(t, "m1")
			h, err := e.protocol.Open(ctx, book.ID, "owner", "m1", model.StatusAvailable)
			require.NoError(t, err)

			member := map[model.Role]string{model.RoleGiver: "owner", model.RoleReceiver: "m1"}

			h, changed, err := e.protocol.Confirm(ctx, h.ID, member[tt.order[0]], tt.order[0])
			require.NoError(t, err)
			require.True(t, changed)
			require.Equal(t, tt.mid, h.State)

			// duplicate tap
			again, changed, err := e.protocol.Confirm(ctx, h.ID, member[tt.order[0]], tt.order[0])
			require.NoError(t, err)
			require.False(t, changed)
			require.Equal(t, h.State, again.State)

			h, changed, err = e.protocol.Confirm(ctx, h.ID, member[tt.order[1]], tt.order[1])
			require.NoError(t, err)
			require.True(t, changed)
			require.Equal(t, model.HandoffBothConfirmed, h.State)
			require.NotNil(t, h.CompletedAt)

			got, err := e.books.Get(ctx, book.ID)
			require.NoError(t, err)
			require.Equal(t, model.StatusBorrowed, got.Status)
			require.Equal(t, "m1", got.CurrentHolderID)
			require.Nil(t, got.NextRecipientID)
			require.NotNil(t, got.BorrowedAt)
			require.NotNil(t, got.DueDate)
			require.WithinDuration(t, got.BorrowedAt.Add(7*24*time.Hour), *got.DueDate, time.Second)

			// confirming a completed handoff changes nothing
			done, changed, err := e.protocol.Confirm(ctx, h.ID, "m1", model.RoleReceiver)
			require.NoError(t, err)
			require.False(t, changed)
			require.Equal(t, model.HandoffBothConfirmed, done.State)

			_, err = e.protocol.Active(ctx, book.ID)
			require.ErrorIs(t, err, errs.ErrNotFound)
		})
	}
}

func TestProtocol_ConfirmForbidden(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	book := e.offered(t, "m1")
	h, err := e.protocol.Open(ctx, book.ID, "owner", "m1", model.StatusAvailable)
	require.NoError(t, err)

	_, _, err = e.protocol.Confirm(ctx, h.ID, "m1", model.RoleGiver)
	require.ErrorIs(t, err, errs.ErrForbidden)
	_, _, err = e.protocol.Confirm(ctx, h.ID, "stranger", model.RoleReceiver)
	require.ErrorIs(t, err, errs.ErrForbidden)
	_, _, err = e.protocol.Confirm(ctx, "missing", "m1", model.RoleReceiver)
	require.ErrorIs(t, err, errs.ErrNotFound)

	cur, err := e.protocol.Get(ctx, h.ID)
	require.NoError(t, err)
	require.Equal(t, model.HandoffOpened, cur.State)
}

func TestProtocol_FinalizeFromQueue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)

	book, err := e.books.Register(ctx, registry.RegisterBook{OwnerID: "owner", Title: "Dune"})
	require.NoError(t, err)
	book, err = e.books.Transition(ctx, book, model.BookTransition{Status: model.StatusBorrowed, CurrentHolderID: "holder"})
	require.NoError(t, err)
	_, err = e.queue.Join(ctx, book.ID, "q1")
	require.NoError(t, err)

	q1 := "q1"
	book, err = e.books.Transition(ctx, book, model.BookTransition{
		Status:          model.StatusReadyForNext,
		CurrentHolderID: "holder",
		NextRecipientID: &q1,
	})
	require.NoError(t, err)
	h, err := e.protocol.Open(ctx, book.ID, "holder", "q1", model.StatusReadyForNext)
	require.NoError(t, err)

	_, _, err = e.protocol.Confirm(ctx, h.ID, "holder", model.RoleGiver)
	require.NoError(t, err)
	_, err = e.protocol.Finalize(ctx, h.ID)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, _, err = e.protocol.Confirm(ctx, h.ID, "q1", model.RoleReceiver)
	require.NoError(t, err)

	got, err := e.books.Get(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusAvailable, got.Status)
	require.Equal(t, "q1", got.CurrentHolderID)
	require.Nil(t, got.DueDate)

	entries, err := e.queue.List(ctx, book.ID)
	require.NoError(t, err)
	require.Empty(t, entries)

	// re-entrant finalize is a no-op
	done, err := e.protocol.Finalize(ctx, h.ID)
	require.NoError(t, err)
	require.Equal(t, model.HandoffBothConfirmed, done.State)
	again, err := e.books.Get(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestProtocol_Cancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	book := e.offered(t, "m1")
	h, err := e.protocol.Open(ctx, book.ID, "owner", "m1", model.StatusAvailable)
	require.NoError(t, err)

	_, err = e.protocol.Cancel(ctx, h.ID, "stranger")
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = e.protocol.Cancel(ctx, h.ID, "owner")
	require.NoError(t, err)

	got, err := e.books.Get(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusAvailable, got.Status)
	require.Equal(t, "owner", got.CurrentHolderID)
	require.Nil(t, got.NextRecipientID)

	_, err = e.protocol.Get(ctx, h.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, _, err = e.protocol.Confirm(ctx, h.ID, "m1", model.RoleReceiver)
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = e.protocol.Cancel(ctx, h.ID, "owner")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProtocol_CancelCompleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	book := e.offered(t, "m1")
	h, err := e.protocol.Open(ctx, book.ID, "owner", "m1", model.StatusAvailable)
	require.NoError(t, err)
	_, _, err = e.protocol.Confirm(ctx, h.ID, "owner", model.RoleGiver)
	require.NoError(t, err)
	_, _, err = e.protocol.Confirm(ctx, h.ID, "m1", model.RoleReceiver)
	require.NoError(t, err)

	_, err = e.protocol.Cancel(ctx, h.ID, "m1")
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestProtocol_StaleAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	book := e.offered(t, "m1")
	h, err := e.protocol.Open(ctx, book.ID, "owner", "m1", model.StatusAvailable)
	require.NoError(t, err)

	stale, err := e.protocol.Stale(ctx, -time.Hour)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	require.Equal(t, h.ID, stale[0].ID)

	stale, err = e.protocol.Stale(ctx, time.Hour)
	require.NoError(t, err)
	require.Empty(t, stale)

	mine, err := e.protocol.ListForMember(ctx, "m1", true)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	none, err := e.protocol.ListForMember(ctx, "stranger", false)
	require.NoError(t, err)
	require.Empty(t, none)
}
