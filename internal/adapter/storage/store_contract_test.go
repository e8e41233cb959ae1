package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/book-lending/internal/core/domain"
	"github.com/rl1809/book-lending/internal/port"
)

// runStoreContract exercises the behaviour every BookRepository must share.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) port.BookRepository) {
	t.Run("CreateThenGet", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		book := newBook("Dune", "Herbert", "SciFi")
		book.Available = false

		id, err := store.Create(ctx, book)
		require.NoError(t, err)
		assert.Equal(t, book.ID, id)

		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		book.Available = true
		assert.Equal(t, book, got)
	})

	t.Run("CreateDuplicateID", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		book := newBook("Dune", "Herbert", "SciFi")
		_, err := store.Create(ctx, book)
		require.NoError(t, err)

		_, err = store.Create(ctx, book)
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Get(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UpdateKeepsAvailability", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		book := newBook("Dune", "Herbert", "SciFi")
		_, err := store.Create(ctx, book)
		require.NoError(t, err)

		ok, err := store.Checkout(ctx, book.ID)
		require.NoError(t, err)
		require.True(t, ok)

		book.Title = "Dune Messiah"
		book.Condition = "Worn"
		book.Available = true
		ok, err = store.Update(ctx, book)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.Get(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", got.Title)
		assert.Equal(t, "Worn", got.Condition)
		assert.False(t, got.Available)

		// identical metadata still counts as a matched row
		ok, err = store.Update(ctx, book)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		store := newStore(t)

		ok, err := store.Update(context.Background(), newBook("Ghost", "Nobody", ""))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		book := newBook("Dune", "Herbert", "SciFi")
		_, err := store.Create(ctx, book)
		require.NoError(t, err)

		ok, err := store.Delete(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Delete(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = store.Get(ctx, book.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CheckoutCheckinTransitions", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		book := newBook("Dune", "Herbert", "SciFi")
		_, err := store.Create(ctx, book)
		require.NoError(t, err)

		ok, err := store.Checkin(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, ok, "checkin of an available copy must not apply")

		ok, err = store.Checkout(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Checkout(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, ok, "second checkout must not apply")

		ok, err = store.Checkin(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.Get(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, got.Available)

		ok, err = store.Checkout(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, ok, "unknown id")
	})

	t.Run("ConcurrentCheckout", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		book := newBook("Dune", "Herbert", "SciFi")
		_, err := store.Create(ctx, book)
		require.NoError(t, err)

		var successCount atomic.Int32
		var wg sync.WaitGroup
		concurrency := 50

		for i := 0; i < concurrency; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := store.Checkout(ctx, book.ID)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if ok {
					successCount.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), successCount.Load())

		got, err := store.Get(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, got.Available)
	})

	t.Run("SearchIsCaseInsensitiveSubstring", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, b := range []domain.BookCopy{
			newBook("Dune", "Frank Herbert", "SciFi"),
			newBook("Children of Dune", "Frank Herbert", "SciFi"),
			newBook("Emma", "Jane Austen", "Classic"),
			newBook("100% Pure", "Anon", ""),
		} {
			_, err := store.Create(ctx, b)
			require.NoError(t, err)
		}

		got, err := store.Search(ctx, domain.SearchByTitle, "DUNE")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Children of Dune", got[0].Title)
		assert.Equal(t, "Dune", got[1].Title)

		got, err = store.Search(ctx, domain.SearchByAuthor, "austen")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Emma", got[0].Title)

		got, err = store.Search(ctx, domain.SearchByGenre, "sci")
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = store.Search(ctx, domain.SearchByTitle, "0%")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "100% Pure", got[0].Title)

		got, err = store.Search(ctx, domain.SearchByTitle, "zzz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ListAllOrdered", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, title := range []string{"Emma", "Dune", "Beloved"} {
			_, err := store.Create(ctx, newBook(title, "Author", ""))
			require.NoError(t, err)
		}

		got, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Beloved", got[0].Title)
		assert.Equal(t, "Dune", got[1].Title)
		assert.Equal(t, "Emma", got[2].Title)
	})

	t.Run("SummaryConsistentUnderTraffic", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		ids := make([]string, 10)
		for i := range ids {
			b := newBook("Copy", "Author", "")
			_, err := store.Create(ctx, b)
			require.NoError(t, err)
			ids[i] = b.ID
		}

		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for j := 0; j < 5; j++ {
					_, _ = store.Checkout(ctx, id)
					_, _ = store.Checkin(ctx, id)
				}
			}(id)
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

	loop:
		for {
			select {
			case <-done:
				break loop
			default:
				s, err := store.Summary(ctx)
				require.NoError(t, err)
				assert.Equal(t, int64(len(ids)), s.Total)
				assert.Equal(t, s.Total, s.Available+s.CheckedOut)
			}
		}

		_, err := store.Checkout(ctx, ids[0])
		require.NoError(t, err)

		s, err := store.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.InventorySummary{Total: 10, Available: 9, CheckedOut: 1}, s)
	})

	t.Run("SummaryEmpty", func(t *testing.T) {
		store := newStore(t)

		s, err := store.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.InventorySummary{}, s)
	})
}

func newBook(title, author, genre string) domain.BookCopy {
	return domain.BookCopy{
		ID:        uuid.NewString(),
		Title:     title,
		Author:    author,
		Genre:     genre,
		Condition: domain.DefaultCondition,
		Available: true,
	}
}
