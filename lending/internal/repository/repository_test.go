package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/book-circle/lending/internal/errs"
	"github.com/Astemirdum/book-circle/lending/internal/model"
	"github.com/Astemirdum/book-circle/lending/internal/testutil"
)

func newBook(id, owner string) model.Book {
	return model.Book{
		ID:              id,
		OwnerID:         owner,
		Title:           "Solaris",
		Status:          model.StatusAvailable,
		CurrentHolderID: owner,
	}
}

func TestRepository_TxRollback(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepository(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Tx(ctx, func(ctx context.Context) error {
		_, err := repo.CreateBook(ctx, newBook("b1", "owner"))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.GetBook(ctx, "b1")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_NestedTxJoinsOuter(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepository(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Tx(ctx, func(ctx context.Context) error {
		if _, err := repo.CreateBook(ctx, newBook("b1", "owner")); err != nil {
			return err
		}
		return repo.Tx(ctx, func(ctx context.Context) error {
			// the outer write is visible inside
			_, err := repo.GetBook(ctx, "b1")
			require.NoError(t, err)
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.GetBook(ctx, "b1")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_CompareAndSwapBook(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepository(t)
	ctx := context.Background()

	book, err := repo.CreateBook(ctx, newBook("b1", "owner"))
	require.NoError(t, err)

	due := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	lent := model.BookTransition{
		Status:          model.StatusBorrowed,
		CurrentHolderID: "reader",
		BorrowedAt:      &book.CreatedAt,
		DueDate:         &due,
	}

	_, err = repo.CompareAndSwapBook(ctx, "b1", model.StatusBorrowed, lent)
	require.ErrorIs(t, err, errs.ErrConflict)

	got, err := repo.CompareAndSwapBook(ctx, "b1", model.StatusAvailable, lent)
	require.NoError(t, err)
	require.Equal(t, model.StatusBorrowed, got.Status)
	require.Equal(t, "reader", got.CurrentHolderID)
	require.NotNil(t, got.DueDate)
	require.True(t, due.Equal(*got.DueDate))
	require.Nil(t, got.NextRecipientID)

	_, err = repo.CompareAndSwapBook(ctx, "missing", model.StatusAvailable, lent)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_RemoveBook(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepository(t)
	ctx := context.Background()

	_, err := repo.CreateBook(ctx, newBook("b1", "owner"))
	require.NoError(t, err)
	_, err = repo.CreateBook(ctx, newBook("b2", "owner"))
	require.NoError(t, err)

	require.ErrorIs(t, repo.RemoveBook(ctx, "b1", model.StatusBorrowed), errs.ErrConflict)
	require.NoError(t, repo.RemoveBook(ctx, "b1", model.StatusAvailable))

	_, err = repo.GetBook(ctx, "b1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	owned, err := repo.ListBooksByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, "b2", owned[0].ID)

	held, err := repo.ListBooksByHolder(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, held, 1)
}

func TestRepository_QueueEntries(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepository(t)
	ctx := context.Background()

	_, err := repo.CreateBook(ctx, newBook("b1", "owner"))
	require.NoError(t, err)

	now := time.Now().UTC()
	first, err := repo.InsertQueueEntry(ctx, "b1", "m1", now)
	require.NoError(t, err)
	second, err := repo.InsertQueueEntry(ctx, "b1", "m2", now)
	require.NoError(t, err)
	require.Greater(t, second.Seq, first.Seq)

	_, err = repo.InsertQueueEntry(ctx, "b1", "m1", now)
	require.Error(t, err)

	removed, err := repo.DeleteQueueEntry(ctx, "b1", "m1")
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = repo.DeleteQueueEntry(ctx, "b1", "m1")
	require.NoError(t, err)
	require.False(t, removed)

	entries, err := repo.ListQueue(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "m2", entries[0].MemberID)
}

func TestRepository_OneActiveHandoffPerBook(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepository(t)
	ctx := context.Background()

	_, err := repo.CreateBook(ctx, newBook("b1", "owner"))
	require.NoError(t, err)

	h := model.Handoff{
		ID: "h1", BookID: "b1", GiverID: "owner", ReceiverID: "m1",
		State: model.HandoffOpened, PriorStatus: model.StatusAvailable,
	}
	_, err = repo.CreateHandoff(ctx, h)
	require.NoError(t, err)

	h.ID, h.ReceiverID = "h2", "m2"
	_, err = repo.CreateHandoff(ctx, h)
	require.Error(t, err)

	active, err := repo.GetActiveHandoff(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, "h1", active.ID)
}

func TestRepository_Members(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepository(t)
	ctx := context.Background()

	_, err := repo.GetMember(ctx, "m1")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, repo.UpsertMember(ctx, model.Member{ID: "m1", DisplayName: "Ann"}))
	require.NoError(t, repo.UpsertMember(ctx, model.Member{ID: "m1", DisplayName: "Anna"}))

	m, err := repo.GetMember(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "Anna", m.DisplayName)
}
