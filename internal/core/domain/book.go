package domain

import "strings"

const DefaultCondition = "Good"

type BookCopy struct {
	ID        string
	Title     string
	Author    string
	Genre     string
	Condition string
	Available bool
}

// SearchField names a catalog column that supports substring search.
type SearchField string

const (
	SearchByTitle  SearchField = "title"
	SearchByAuthor SearchField = "author"
	SearchByGenre  SearchField = "genre"
)

func (f SearchField) Valid() bool {
	switch f {
	case SearchByTitle, SearchByAuthor, SearchByGenre:
		return true
	}
	return false
}

// Value returns the field of b that f refers to.
func (f SearchField) Value(b BookCopy) string {
	switch f {
	case SearchByTitle:
		return b.Title
	case SearchByAuthor:
		return b.Author
	case SearchByGenre:
		return b.Genre
	}
	return ""
}

// Matches reports whether term is a case-insensitive substring of the field.
func (f SearchField) Matches(b BookCopy, term string) bool {
	return strings.Contains(strings.ToLower(f.Value(b)), strings.ToLower(term))
}

// BookPatch carries the metadata fields of an update. Empty strings keep the stored value.
type BookPatch struct {
	Title     string
	Author    string
	Genre     string
	Condition string
}

// Apply merges p into b. Availability is never touched.
func (p BookPatch) Apply(b BookCopy) BookCopy {
	if p.Title != "" {
		b.Title = p.Title
	}
	if p.Author != "" {
		b.Author = p.Author
	}
	if p.Genre != "" {
		b.Genre = p.Genre
	}
	if p.Condition != "" {
		b.Condition = p.Condition
	}
	return b
}
