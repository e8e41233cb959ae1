package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/book-lending/internal/adapter/handler/pb"
	"github.com/rl1809/book-lending/internal/core/domain"
	"github.com/rl1809/book-lending/internal/core/service"
	"github.com/rl1809/book-lending/internal/metrics"
)

type GRPCHandler struct {
	pb.UnimplementedLibraryServiceServer
	library *service.LibraryService
	metrics *metrics.Metrics
}

func NewGRPCHandler(library *service.LibraryService, m *metrics.Metrics) *GRPCHandler {
	return &GRPCHandler{library: library, metrics: m}
}

func (h *GRPCHandler) SearchBook(ctx context.Context, req *pb.SearchBookRequest) (*pb.SearchBookResponse, error) {
	books, err := h.library.Search(ctx, service.SearchQuery{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
	})
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}
	return &pb.SearchBookResponse{Books: toPBBooks(books)}, nil
}

func (h *GRPCHandler) CheckoutBook(ctx context.Context, req *pb.CheckoutBookRequest) (*pb.CheckoutBookResponse, error) {
	loan, err := h.library.Checkout(ctx, req.UserID, req.CopyID, int(req.LoanDays))
	observeTransition(h.metrics, metrics.OpCheckout, err)
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}

	return &pb.CheckoutBookResponse{
		LoanID:     loan.LoanID,
		DueDate:    loan.DueDateString(),
		BookTitle:  loan.BookTitle,
		BookAuthor: loan.BookAuthor,
	}, nil
}

func (h *GRPCHandler) ReturnBook(ctx context.Context, req *pb.ReturnBookRequest) (*pb.ReturnBookResponse, error) {
	ok, err := h.library.Return(ctx, req.CopyID)
	observeTransition(h.metrics, metrics.OpReturn, err)
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}
	return &pb.ReturnBookResponse{Success: ok}, nil
}

func (h *GRPCHandler) CreateBook(ctx context.Context, req *pb.CreateBookRequest) (*pb.CreateBookResponse, error) {
	id, err := h.library.Add(ctx, req.Title, req.Author, req.Genre, req.Condition)
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}
	return &pb.CreateBookResponse{ID: id}, nil
}

func (h *GRPCHandler) GetBook(ctx context.Context, req *pb.GetBookRequest) (*pb.GetBookResponse, error) {
	book, err := h.library.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err, codes.NotFound)
	}
	return &pb.GetBookResponse{Book: toPBBook(book)}, nil
}

func (h *GRPCHandler) UpdateBook(ctx context.Context, req *pb.UpdateBookRequest) (*pb.UpdateBookResponse, error) {
	ok, err := h.library.Update(ctx, req.ID, domain.BookPatch{
		Title:     req.Title,
		Author:    req.Author,
		Genre:     req.Genre,
		Condition: req.Condition,
	})
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}
	return &pb.UpdateBookResponse{Success: ok}, nil
}

func (h *GRPCHandler) DeleteBook(ctx context.Context, req *pb.DeleteBookRequest) (*pb.DeleteBookResponse, error) {
	ok, err := h.library.Remove(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}
	return &pb.DeleteBookResponse{Success: ok}, nil
}

func (h *GRPCHandler) GetAllBooks(ctx context.Context, _ *pb.GetAllBooksRequest) (*pb.GetAllBooksResponse, error) {
	books, err := h.library.ListAll(ctx)
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}
	return &pb.GetAllBooksResponse{Books: toPBBooks(books)}, nil
}

func (h *GRPCHandler) GetInventorySummary(ctx context.Context, _ *pb.GetInventorySummaryRequest) (*pb.GetInventorySummaryResponse, error) {
	summary, err := h.library.Summary(ctx)
	if err != nil {
		return nil, toStatus(err, codes.InvalidArgument)
	}

	return &pb.GetInventorySummaryResponse{
		TotalBooks:      summary.Total,
		AvailableBooks:  summary.Available,
		CheckedOutBooks: summary.CheckedOut,
	}, nil
}

// toStatus maps a domain error onto a gRPC status. notFound is the code the
// calling operation reports for a missing copy. Storage details stay in the log.
func toStatus(err error, notFound codes.Code) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAlreadyCheckedOut),
		errors.Is(err, domain.ErrAlreadyAvailable):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(notFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateID):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		return status.Error(codes.Internal, "internal error")
	}
}

func observeTransition(m *metrics.Metrics, op string, err error) {
	switch {
	case err == nil:
		m.ObserveTransition(op, metrics.ResultOK)
	case errors.Is(err, domain.ErrAlreadyCheckedOut), errors.Is(err, domain.ErrAlreadyAvailable):
		m.ObserveTransition(op, metrics.ResultConflict)
	default:
		m.ObserveTransition(op, metrics.ResultError)
	}
}

func toPBBook(b domain.BookCopy) *pb.BookCopy {
	return &pb.BookCopy{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		IsAvailable: b.Available,
		Condition:   b.Condition,
	}
}

func toPBBooks(books []domain.BookCopy) []*pb.BookCopy {
	out := make([]*pb.BookCopy, 0, len(books))
	for _, b := range books {
		out = append(out, toPBBook(b))
	}
	return out
}
