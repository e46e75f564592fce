package queue_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/queue"
	"github.com/Astemirdum/book-circle/lending/internal/registry"
	"github.com/Astemirdum/book-circle/lending/internal/repository"
	"github.com/Astemirdum/book-circle/lending/internal/testutil"
)

func borrowedBook(t *testing.T, repo repository.Repository, holder string) model.Book {
	t.Helper()
	ctx := context.Background()
	reg := registry.New(repo, zap.NewNop())
	book, err := reg.Register(ctx, registry.RegisterBook{OwnerID: "owner", Title: "Dune"})
	require.NoError(t, err)
	book, err = reg.Transition(ctx, book, model.BookTransition{Status: model.StatusBorrowed, CurrentHolderID: holder})
	require.NoError(t, err)
	return book
}

func requireDense(t *testing.T, entries []model.QueueEntry) {
	t.Helper()
	for i, e := range entries {
		require.Equal(t, i+1, e.Position)
	}
}

func TestManager_JoinOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := testutil.NewRepository(t)
	q := queue.New(repo, zap.NewNop())
	book := borrowedBook(t, repo, "holder")

	for i := 1; i <= 4; i++ {
		entry, err := q.Join(ctx, book.ID, fmt.Sprintf("m%d", i))
		require.NoError(t, err)
		require.Equal(t, i, entry.Position)
	}

	entries, err := q.List(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	requireDense(t, entries)
	require.Equal(t, "m1", entries[0].MemberID)
	require.Equal(t, "m4", entries[3].MemberID)

	head, ok, err := q.PeekNext(ctx, book.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "m1", head)
}

func TestManager_JoinRejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := testutil.NewRepository(t)
	q := queue.New(repo, zap.NewNop())
	book := borrowedBook(t, repo, "holder")

	_, err := q.Join(ctx, book.ID, "holder")
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, err = q.Join(ctx, book.ID, "m1")
	require.NoError(t, err)
	_, err = q.Join(ctx, book.ID, "m1")
	require.ErrorIs(t, err, errs.ErrAlreadyQueued)
	require.True(t, errs.InProgress(err))

	_, err = q.Join(ctx, "missing", "m1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = q.Join(ctx, book.ID, "")
	require.ErrorIs(t, err, errs.ErrMemberID)

	avail, err := registry.New(repo, zap.NewNop()).Register(ctx, registry.RegisterBook{OwnerID: "owner", Title: "Emma"})
	require.NoError(t, err)
	_, err = q.Join(ctx, avail.ID, "m1")
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestManager_PopAndLeaveKeepPositionsDense(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := testutil.NewRepository(t)
	q := queue.New(repo, zap.NewNop())
	book := borrowedBook(t, repo, "holder")

	for _, m := range []string{"a", "b", "c", "d", "e"} {
		_, err := q.Join(ctx, book.ID, m)
		require.NoError(t, err)
	}

	head, ok, err := q.PopNext(ctx, book.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", head)

	require.NoError(t, q.Leave(ctx, book.ID, "c"))
	require.ErrorIs(t, q.Leave(ctx, book.ID, "c"), errs.ErrNotFound)

	entries, err := q.List(ctx, book.ID)
	require.NoError(t, err)
	requireDense(t, entries)
	members := make([]string, 0, len(entries))
	for _, e := range entries {
		members = append(members, e.MemberID)
	}
	require.Equal(t, []string{"b", "d", "e"}, members)

	// rejoining goes to the back
	entry, err := q.Join(ctx, book.ID, "a")
	require.NoError(t, err)
	require.Equal(t, 4, entry.Position)

	for range []int{1, 2, 3, 4} {
		_, ok, err := q.PopNext(ctx, book.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, ok, err = q.PopNext(ctx, book.ID)
	require.NoError(t, err)
	require.False(t, ok)

	entries, err = q.List(ctx, book.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestManager_LeaveWhileBeingHandedTheBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := testutil.NewRepository(t)
	q := queue.New(repo, zap.NewNop())
	book := borrowedBook(t, repo, "holder")

	_, err := q.Join(ctx, book.ID, "m1")
	require.NoError(t, err)
	_, err = q.Join(ctx, book.ID, "m2")
	require.NoError(t, err)

	recipient := "m1"
	_, err = registry.New(repo, zap.NewNop()).Transition(ctx, book, model.BookTransition{
		Status:          model.StatusReadyForNext,
		CurrentHolderID: "holder",
		NextRecipientID: &recipient,
	})
	require.NoError(t, err)

	err = q.Leave(ctx, book.ID, "m1")
	require.ErrorIs(t, err, errs.ErrAlreadyOpen)
	require.NoError(t, q.Leave(ctx, book.ID, "m2"))

	entries, err := q.List(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "m1", entries[0].MemberID)
}
