package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/rl1809/book-lending/internal/core/domain"
)

// MemoryAdapter keeps copies in process memory. Every method holds the lock
// for its whole read-modify-write, which gives Checkout and Checkin the same
// compare-and-swap guarantee the SQL adapter gets from its guarded UPDATE.
type MemoryAdapter struct {
	mu    sync.RWMutex
	books map[string]domain.BookCopy
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{books: make(map[string]domain.BookCopy)}
}

func (m *MemoryAdapter) Get(ctx context.Context, id string) (domain.BookCopy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[id]
	if !ok {
		return domain.BookCopy{}, domain.NewNotFoundError(id)
	}
	return b, nil
}

func (m *MemoryAdapter) Create(ctx context.Context, book domain.BookCopy) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[book.ID]; ok {
		return "", domain.ErrDuplicateID
	}
	book.Available = true
	m.books[book.ID] = book
	return book.ID, nil
}

func (m *MemoryAdapter) Update(ctx context.Context, book domain.BookCopy) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.books[book.ID]
	if !ok {
		return false, nil
	}
	cur.Title = book.Title
	cur.Author = book.Author
	cur.Genre = book.Genre
	cur.Condition = book.Condition
	m.books[book.ID] = cur
	return true, nil
}

func (m *MemoryAdapter) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return false, nil
	}
	delete(m.books, id)
	return true, nil
}

func (m *MemoryAdapter) ListAll(ctx context.Context) ([]domain.BookCopy, error) {
	return m.filter(func(domain.BookCopy) bool { return true }), nil
}

func (m *MemoryAdapter) Checkout(ctx context.Context, id string) (bool, error) {
	return m.transition(id, true)
}

func (m *MemoryAdapter) Checkin(ctx context.Context, id string) (bool, error) {
	return m.transition(id, false)
}

func (m *MemoryAdapter) Search(ctx context.Context, field domain.SearchField, term string) ([]domain.BookCopy, error) {
	return m.filter(func(b domain.BookCopy) bool { return field.Matches(b, term) }), nil
}

func (m *MemoryAdapter) Summary(ctx context.Context) (domain.InventorySummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var available int64
	for _, b := range m.books {
		if b.Available {
			available++
		}
	}
	return domain.NewInventorySummary(int64(len(m.books)), available), nil
}

func (m *MemoryAdapter) Ping(ctx context.Context) error {
	return nil
}

// transition flips available to !from only if it currently equals from.
func (m *MemoryAdapter) transition(id string, from bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok || b.Available != from {
		return false, nil
	}
	b.Available = !from
	m.books[id] = b
	return true, nil
}

func (m *MemoryAdapter) filter(keep func(domain.BookCopy) bool) []domain.BookCopy {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.BookCopy, 0, len(m.books))
	for _, b := range m.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sortBooks(out)
	return out
}

func sortBooks(books []domain.BookCopy) {
	sort.Slice(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}
		return books[i].ID < books[j].ID
	})
}
