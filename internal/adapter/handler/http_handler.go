package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/rl1809/book-lending/internal/adapter/handler/pb"
	"github.com/rl1809/book-lending/internal/core/domain"
	"github.com/rl1809/book-lending/internal/core/service"
	"github.com/rl1809/book-lending/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPHandler is a JSON mirror of the gRPC service. Request and response
// bodies reuse the pb message types.
type HTTPHandler struct {
	library *service.LibraryService
	metrics *metrics.Metrics
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewHTTPHandler(library *service.LibraryService, m *metrics.Metrics) *HTTPHandler {
	return &HTTPHandler{library: library, metrics: m}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/books", h.GetAllBooks)
	mux.HandleFunc("POST /api/books", h.CreateBook)
	mux.HandleFunc("GET /api/books/search", h.SearchBook)
	mux.HandleFunc("GET /api/books/{id}", h.GetBook)
	mux.HandleFunc("PATCH /api/books/{id}", h.UpdateBook)
	mux.HandleFunc("DELETE /api/books/{id}", h.DeleteBook)
	mux.HandleFunc("POST /api/books/{id}/checkout", h.CheckoutBook)
	mux.HandleFunc("POST /api/books/{id}/return", h.ReturnBook)
	mux.HandleFunc("GET /api/inventory/summary", h.GetInventorySummary)
}

func (h *HTTPHandler) SearchBook(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	books, err := h.library.Search(r.Context(), service.SearchQuery{
		Title:  q.Get("title"),
		Author: q.Get("author"),
		Genre:  q.Get("genre"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.SearchBookResponse{Books: toPBBooks(books)})
}

func (h *HTTPHandler) CheckoutBook(w http.ResponseWriter, r *http.Request) {
	var req pb.CheckoutBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loan, err := h.library.Checkout(r.Context(), req.UserID, r.PathValue("id"), int(req.LoanDays))
	observeTransition(h.metrics, metrics.OpCheckout, err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pb.CheckoutBookResponse{
		LoanID:     loan.LoanID,
		DueDate:    loan.DueDateString(),
		BookTitle:  loan.BookTitle,
		BookAuthor: loan.BookAuthor,
	})
}

func (h *HTTPHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	ok, err := h.library.Return(r.Context(), r.PathValue("id"))
	observeTransition(h.metrics, metrics.OpReturn, err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.ReturnBookResponse{Success: ok})
}

func (h *HTTPHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req pb.CreateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.library.Add(r.Context(), req.Title, req.Author, req.Genre, req.Condition)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pb.CreateBookResponse{ID: id})
}

func (h *HTTPHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.library.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.GetBookResponse{Book: toPBBook(book)})
}

func (h *HTTPHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var req pb.UpdateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ok, err := h.library.Update(r.Context(), r.PathValue("id"), domain.BookPatch{
		Title:     req.Title,
		Author:    req.Author,
		Genre:     req.Genre,
		Condition: req.Condition,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.UpdateBookResponse{Success: ok})
}

func (h *HTTPHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	ok, err := h.library.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.DeleteBookResponse{Success: ok})
}

func (h *HTTPHandler) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.library.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pb.GetAllBooksResponse{Books: toPBBooks(books)})
}

func (h *HTTPHandler) GetInventorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.library.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pb.GetInventorySummaryResponse{
		TotalBooks:      summary.Total,
		AvailableBooks:  summary.Available,
		CheckedOutBooks: summary.CheckedOut,
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.library.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, MessageResponse{
			Success: false,
			Message: "invalid request body",
		})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrAlreadyCheckedOut),
		errors.Is(err, domain.ErrAlreadyAvailable),
		errors.Is(err, domain.ErrDuplicateID):
		status, message = http.StatusConflict, err.Error()
	default:
		log.Error().Err(err).Msg("request failed")
	}

	writeJSON(w, status, MessageResponse{
		Success: false,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}
