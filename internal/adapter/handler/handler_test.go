package handler

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/book-lending/internal/adapter/storage"
	"github.com/rl1809/book-lending/internal/core/domain"
	"github.com/rl1809/book-lending/internal/core/service"
	"github.com/rl1809/book-lending/internal/metrics"
	"github.com/rl1809/book-lending/internal/port"
)

var fixedNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func newLibrary(t *testing.T, store port.BookRepository) (*service.LibraryService, *metrics.Metrics) {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryAdapter()
	}
	library := service.NewLibraryService(store, service.WithClock(func() time.Time { return fixedNow }))
	return library, metrics.New(prometheus.NewRegistry())
}

func seedBook(t *testing.T, library *service.LibraryService, title, author, genre string) string {
	t.Helper()
	id, err := library.Add(context.Background(), title, author, genre, "")
	require.NoError(t, err)
	return id
}

// brokenStore fails every call the handlers reach.
type brokenStore struct {
	port.BookRepository
}

func (brokenStore) ListAll(context.Context) ([]domain.BookCopy, error) {
	return nil, domain.NewStorageError("list books", context.DeadlineExceeded)
}

func (brokenStore) Summary(context.Context) (domain.InventorySummary, error) {
	return domain.InventorySummary{}, domain.NewStorageError("query summary", context.DeadlineExceeded)
}

func (brokenStore) Ping(context.Context) error {
	return domain.NewStorageError("ping", context.DeadlineExceeded)
}
