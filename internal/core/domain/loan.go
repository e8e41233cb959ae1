package domain

import "time"

const DueDateLayout = "2006-01-02"

type LoanRecord struct {
	LoanID     string
	UserID     string
	CopyID     string
	BookTitle  string
	BookAuthor string
	CreatedAt  time.Time
	DueDate    time.Time
}

func (l LoanRecord) DueDateString() string {
	return l.DueDate.Format(DueDateLayout)
}
