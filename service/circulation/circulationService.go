package circulation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
	"github.com/usrinivasan240-cpu/e-libaray.cto/util/metrics"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrUserNotFound ErrCode = "USER_NOT_FOUND"
	ErrNotAvailable ErrCode = "BOOK_NOT_AVAILABLE"
	ErrNoOpenIssue  ErrCode = "NO_OPEN_ISSUE"
	ErrNoSelector   ErrCode = "NO_SELECTOR"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// TxOps are the row operations available inside one atomic transaction.
// The book row is locked first, so the availability check always sees
// committed state and racing issuers serialize on it.
type TxOps interface {
	BookForUpdate(ctx context.Context, bookID int64) (*model.Book, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
	InsertIssue(ctx context.Context, is *model.BookIssue) (int64, error)
	SetBookStatus(ctx context.Context, bookID int64, st model.BookStatus) error

	// LatestOpenIssue picks the most recently issued open issue matching
	// the given selectors; zero means the selector is unset.
	LatestOpenIssue(ctx context.Context, issueID, bookID int64) (*model.BookIssue, error)
	CloseIssue(ctx context.Context, issueID int64, returnedAt time.Time) error
}

// Store is the transactional ledger the engine runs against. Tx runs fn
// atomically: every write inside fn commits together or not at all.
type Store interface {
	Tx(ctx context.Context, fn func(TxOps) error) error
	ListIssued(ctx context.Context) ([]model.IssuedRow, error)
	BookWithActiveIssue(ctx context.Context, bookID int64) (*model.Book, *model.BookIssue, error)
}

// BookDetail is a book plus its open issue, if any.
type BookDetail struct {
	Book        model.Book       `json:"book"`
	ActiveIssue *model.BookIssue `json:"active_issue,omitempty"`
}

type Service interface {
	// IssueBook lends a book: records the issue and flips the book to
	// ISSUED in one transaction.
	IssueBook(ctx context.Context, bookID, userID int64, due time.Time) (*model.BookIssue, error)

	// ReturnBook closes the most recent open issue matching the given
	// selectors (issueID, bookID; zero = unset, at least one required)
	// and frees the book the issue points at.
	ReturnBook(ctx context.Context, issueID, bookID int64) (*model.BookIssue, error)

	// ListIssued returns all open issues, most recent first.
	ListIssued(ctx context.Context) ([]model.IssuedRow, error)

	Detail(ctx context.Context, bookID int64) (*BookDetail, error)
}

type service struct {
	store Store
}

func New(store Store) Service { return &service{store: store} }

func (s *service) IssueBook(ctx context.Context, bookID, userID int64, due time.Time) (*model.BookIssue, error) {
	var out *model.BookIssue

	err := s.store.Tx(ctx, func(tx TxOps) error {
		b, err := tx.BookForUpdate(ctx, bookID)
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrBookNotFound)
		}
		if err != nil {
			return err
		}
		if b.Status != model.BookAvailable {
			return makeErr(ErrNotAvailable)
		}

		ok, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return makeErr(ErrUserNotFound)
		}

		is := &model.BookIssue{
			BookID:     bookID,
			UserID:     userID,
			IssuedDate: time.Now().UTC(),
			DueDate:    due,
		}
		id, err := tx.InsertIssue(ctx, is)
		if err != nil {
			return err
		}
		is.ID = id

		if err := tx.SetBookStatus(ctx, bookID, model.BookIssued); err != nil {
			return err
		}
		out = is
		return nil
	})
	if err != nil {
		if Code(err) == ErrNotAvailable {
			metrics.IssueConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.BooksIssuedTotal.Inc()
	return out, nil
}

func (s *service) ReturnBook(ctx context.Context, issueID, bookID int64) (*model.BookIssue, error) {
	if issueID == 0 && bookID == 0 {
		return nil, makeErr(ErrNoSelector)
	}

	var out *model.BookIssue

	err := s.store.Tx(ctx, func(tx TxOps) error {
		is, err := tx.LatestOpenIssue(ctx, issueID, bookID)
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNoOpenIssue)
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.CloseIssue(ctx, is.ID, now); err != nil {
			return err
		}
		// Free the book the matched issue points at, never a
		// caller-supplied book id.
		if err := tx.SetBookStatus(ctx, is.BookID, model.BookAvailable); err != nil {
			return err
		}
		is.ReturnedDate = &now
		out = is
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BooksReturnedTotal.Inc()
	return out, nil
}

func (s *service) ListIssued(ctx context.Context) ([]model.IssuedRow, error) {
	return s.store.ListIssued(ctx)
}

func (s *service) Detail(ctx context.Context, bookID int64) (*BookDetail, error) {
	b, is, err := s.store.BookWithActiveIssue(ctx, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrBookNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &BookDetail{Book: *b, ActiveIssue: is}, nil
}
