package circulation

import "time"

type IssueBookReq struct {
	BookID  int64     `json:"book_id" validate:"required,gt=0"`
	UserID  int64     `json:"user_id" validate:"required,gt=0"`
	DueDate time.Time `json:"due_date" validate:"required"`
}

// ReturnBookReq takes at least one selector; the open issue decides
// which book gets freed.
type ReturnBookReq struct {
	IssueID int64 `json:"issue_id"`
	BookID  int64 `json:"book_id"`
}
