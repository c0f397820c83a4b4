// model/book.go
package model

import "time"

type BookStatus string

const (
	BookAvailable BookStatus = "AVAILABLE"
	BookIssued    BookStatus = "ISSUED"
)

type Book struct {
	ID              int64      `json:"book_id"`
	Name            string     `json:"book_name"`
	AuthorName      string     `json:"author_name"`
	Category        string     `json:"category"`
	PublicationYear int64      `json:"publication_year"`
	Location        string     `json:"library_location"`
	Status          BookStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

// BookIssue is one lending of a book. Open while ReturnedDate is nil;
// a book carries at most one open issue at a time.
type BookIssue struct {
	ID           int64      `json:"issue_id"`
	BookID       int64      `json:"book_id"`
	UserID       int64      `json:"user_id"`
	IssuedDate   time.Time  `json:"issued_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
}

// IssuedRow is an open issue joined with book and borrower summaries.
type IssuedRow struct {
	IssueID      int64     `json:"issue_id"`
	BookID       int64     `json:"book_id"`
	BookName     string    `json:"book_name"`
	AuthorName   string    `json:"author_name"`
	UserID       int64     `json:"user_id"`
	BorrowerName string    `json:"borrower_name"`
	Email        string    `json:"email"`
	IssuedDate   time.Time `json:"issued_date"`
	DueDate      time.Time `json:"due_date"`
}
