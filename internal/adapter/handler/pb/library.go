// Package pb defines the library.v1.LibraryService wire contract: message
// types, the gRPC service descriptor and a client. Messages are JSON encoded.
package pb

type BookCopy struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	IsAvailable bool   `json:"isAvailable"`
	Condition   string `json:"condition"`
}

type SearchBookRequest struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

type SearchBookResponse struct {
	Books []*BookCopy `json:"books"`
}

type CheckoutBookRequest struct {
	UserID   string `json:"userId"`
	CopyID   string `json:"copyId"`
	LoanDays int32  `json:"loanDays"`
}

type CheckoutBookResponse struct {
	LoanID     string `json:"loanId"`
	DueDate    string `json:"dueDate"`
	BookTitle  string `json:"bookTitle"`
	BookAuthor string `json:"bookAuthor"`
}

type ReturnBookRequest struct {
	CopyID string `json:"copyId"`
}

type ReturnBookResponse struct {
	Success bool `json:"success"`
}

type CreateBookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Condition string `json:"condition"`
}

type CreateBookResponse struct {
	ID string `json:"id"`
}

type GetBookRequest struct {
	ID string `json:"id"`
}

type GetBookResponse struct {
	Book *BookCopy `json:"book"`
}

type UpdateBookRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Condition string `json:"condition,omitempty"`
}

type UpdateBookResponse struct {
	Success bool `json:"success"`
}

type DeleteBookRequest struct {
	ID string `json:"id"`
}

type DeleteBookResponse struct {
	Success bool `json:"success"`
}

type GetAllBooksRequest struct{}

type GetAllBooksResponse struct {
	Books []*BookCopy `json:"books"`
}

type GetInventorySummaryRequest struct{}

type GetInventorySummaryResponse struct {
	TotalBooks      int64 `json:"totalBooks"`
	AvailableBooks  int64 `json:"availableBooks"`
	CheckedOutBooks int64 `json:"checkedOutBooks"`
}
