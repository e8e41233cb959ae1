package service

import (
	"context"

	"github.com/rl1809/book-lending/internal/core/domain"
)

type SearchQuery struct {
	Title  string
	Author string
	Genre  string
}

func (q SearchQuery) Empty() bool {
	return q.Title == "" && q.Author == "" && q.Genre == ""
}

// Search ORs the supplied predicates. Results are unique by id and keep
// first-occurrence order: title matches, then author, then genre. A query
// with no predicates returns nothing rather than the whole catalog.
func (s *LibraryService) Search(ctx context.Context, q SearchQuery) ([]domain.BookCopy, error) {
	if q.Empty() {
		return []domain.BookCopy{}, nil
	}

	predicates := []struct {
		field domain.SearchField
		term  string
	}{
		{domain.SearchByTitle, q.Title},
		{domain.SearchByAuthor, q.Author},
		{domain.SearchByGenre, q.Genre},
	}

	seen := make(map[string]struct{})
	results := []domain.BookCopy{}
	for _, p := range predicates {
		if p.term == "" {
			continue
		}

		books, err := s.books.Search(ctx, p.field, p.term)
		if err != nil {
			return nil, err
		}
		for _, b := range books {
			if _, dup := seen[b.ID]; dup {
				continue
			}
			seen[b.ID] = struct{}{}
			results = append(results, b)
		}
	}
	return results, nil
}
