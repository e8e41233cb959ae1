package port

import (
	"context"

	"github.com/rl1809/book-lending/internal/core/domain"
)

// BookRepository is the inventory store. Implementations own the durable
// book copy state; callers must not cache it across operations.
type BookRepository interface {
	// Get returns domain.ErrNotFound when no copy has the id
	Get(ctx context.Context, id string) (domain.BookCopy, error)

	// Create inserts the copy as available, domain.ErrDuplicateID on id collision
	Create(ctx context.Context, book domain.BookCopy) (string, error)

	// Update overwrites title, author, genre and condition; false if no row matched
	Update(ctx context.Context, book domain.BookCopy) (bool, error)

	// Delete removes the copy; false if no row matched
	Delete(ctx context.Context, id string) (bool, error)

	// ListAll returns every copy ordered by title, then id
	ListAll(ctx context.Context) ([]domain.BookCopy, error)

	// Checkout atomically flips available from true to false; true iff this call changed it
	Checkout(ctx context.Context, id string) (bool, error)

	// Checkin atomically flips available from false to true; true iff this call changed it
	Checkin(ctx context.Context, id string) (bool, error)

	// Search matches term as a case-insensitive substring of field, ordered like ListAll
	Search(ctx context.Context, field domain.SearchField, term string) ([]domain.BookCopy, error)

	// Summary counts copies from a single consistent read
	Summary(ctx context.Context) (domain.InventorySummary, error)

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
}
