package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchField_Matches(t *testing.T) {
	b := BookCopy{Title: "Dune Messiah", Author: "Frank Herbert", Genre: "SciFi"}

	assert.True(t, SearchByTitle.Matches(b, "dune"))
	assert.True(t, SearchByTitle.Matches(b, "MESSIAH"))
	assert.True(t, SearchByAuthor.Matches(b, "herb"))
	assert.True(t, SearchByGenre.Matches(b, "sci"))
	assert.False(t, SearchByGenre.Matches(b, "fantasy"))
	assert.False(t, SearchField("isbn").Valid())
}

func TestBookPatch_Apply(t *testing.T) {
	b := BookCopy{ID: "1", Title: "Dune", Author: "Herbert", Genre: "SciFi", Condition: "Good", Available: false}

	got := BookPatch{Title: "Dune (2nd ed.)", Condition: "Worn"}.Apply(b)

	assert.Equal(t, "Dune (2nd ed.)", got.Title)
	assert.Equal(t, "Herbert", got.Author)
	assert.Equal(t, "SciFi", got.Genre)
	assert.Equal(t, "Worn", got.Condition)
	assert.False(t, got.Available)
	assert.Equal(t, "1", got.ID)
}

func TestNewInventorySummary(t *testing.T) {
	s := NewInventorySummary(5, 3)
	assert.Equal(t, int64(2), s.CheckedOut)
	assert.Equal(t, s.Total, s.Available+s.CheckedOut)
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("get book", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "get book")
}
