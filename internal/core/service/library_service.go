package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rl1809/book-lending/internal/core/domain"
	"github.com/rl1809/book-lending/internal/port"
)

type LibraryService struct {
	books port.BookRepository
	now   func() time.Time
	newID func() string
}

type Option func(*LibraryService)

func WithClock(now func() time.Time) Option {
	return func(s *LibraryService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *LibraryService) { s.newID = newID }
}

func NewLibraryService(books port.BookRepository, opts ...Option) *LibraryService {
	s := &LibraryService{
		books: books,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type checkoutRequest struct {
	UserID   string
	CopyID   string
	LoanDays int
}

func (r checkoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required.Error("user id is required")),
		validation.Field(&r.CopyID, validation.Required.Error("copy id is required")),
		validation.Field(&r.LoanDays, validation.Required.Error("loan days must be positive"), validation.Min(1).Error("loan days must be positive")),
	)
}

type newBookRequest struct {
	Title  string
	Author string
}

func (r newBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
	)
}

// Checkout lends a copy. The availability pre-check only saves a write; the
// store's conditional update decides which of several concurrent callers wins.
func (s *LibraryService) Checkout(ctx context.Context, userID, copyID string, loanDays int) (domain.LoanRecord, error) {
	if err := (checkoutRequest{UserID: userID, CopyID: copyID, LoanDays: loanDays}).Validate(); err != nil {
		return domain.LoanRecord{}, validationError(err)
	}

	book, err := s.books.Get(ctx, copyID)
	if err != nil {
		return domain.LoanRecord{}, err
	}
	if !book.Available {
		return domain.LoanRecord{}, fmt.Errorf("%w: id=%s", domain.ErrAlreadyCheckedOut, copyID)
	}

	ok, err := s.books.Checkout(ctx, copyID)
	if err != nil {
		return domain.LoanRecord{}, err
	}
	if !ok {
		log.Warn().Str("copy_id", copyID).Str("user_id", userID).Msg("checkout lost race")
		return domain.LoanRecord{}, fmt.Errorf("%w: id=%s", domain.ErrAlreadyCheckedOut, copyID)
	}

	now := s.now()
	return domain.LoanRecord{
		LoanID:     s.newID(),
		UserID:     userID,
		CopyID:     copyID,
		BookTitle:  book.Title,
		BookAuthor: book.Author,
		CreatedAt:  now,
		DueDate:    now.AddDate(0, 0, loanDays),
	}, nil
}

// Return checks a copy back in. A copy that is already available, or that
// another caller returned first, yields domain.ErrAlreadyAvailable.
func (s *LibraryService) Return(ctx context.Context, copyID string) (bool, error) {
	if err := requireID(copyID, "copy id"); err != nil {
		return false, err
	}

	book, err := s.books.Get(ctx, copyID)
	if err != nil {
		return false, err
	}
	if book.Available {
		return false, fmt.Errorf("%w: id=%s", domain.ErrAlreadyAvailable, copyID)
	}

	ok, err := s.books.Checkin(ctx, copyID)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Warn().Str("copy_id", copyID).Msg("return lost race")
		return false, fmt.Errorf("%w: id=%s", domain.ErrAlreadyAvailable, copyID)
	}
	return true, nil
}

func (s *LibraryService) Add(ctx context.Context, title, author, genre, condition string) (string, error) {
	if err := (newBookRequest{Title: title, Author: author}).Validate(); err != nil {
		return "", validationError(err)
	}
	if condition == "" {
		condition = domain.DefaultCondition
	}

	return s.books.Create(ctx, domain.BookCopy{
		ID:        s.newID(),
		Title:     title,
		Author:    author,
		Genre:     genre,
		Condition: condition,
		Available: true,
	})
}

// Update merges the non-empty fields of patch into the stored copy.
func (s *LibraryService) Update(ctx context.Context, id string, patch domain.BookPatch) (bool, error) {
	if err := requireID(id, "id"); err != nil {
		return false, err
	}

	existing, err := s.books.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return s.books.Update(ctx, patch.Apply(existing))
}

func (s *LibraryService) Remove(ctx context.Context, id string) (bool, error) {
	if err := requireID(id, "id"); err != nil {
		return false, err
	}

	if _, err := s.books.Get(ctx, id); err != nil {
		return false, err
	}
	return s.books.Delete(ctx, id)
}

func (s *LibraryService) Get(ctx context.Context, id string) (domain.BookCopy, error) {
	if err := requireID(id, "id"); err != nil {
		return domain.BookCopy{}, err
	}
	return s.books.Get(ctx, id)
}

func (s *LibraryService) ListAll(ctx context.Context) ([]domain.BookCopy, error) {
	return s.books.ListAll(ctx)
}

func (s *LibraryService) Summary(ctx context.Context) (domain.InventorySummary, error) {
	return s.books.Summary(ctx)
}

// Ping reports whether the backing store is reachable.
func (s *LibraryService) Ping(ctx context.Context) error {
	return s.books.Ping(ctx)
}

func requireID(id, name string) error {
	if id == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	return nil
}

func validationError(err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return fmt.Errorf("%w: %s", domain.ErrValidation, errs.Error())
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
