// repository/circulation/repo.go
package circulationrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
	circulation "github.com/usrinivasan240-cpu/e-libaray.cto/service/circulation"
)

type repo struct{ db *sql.DB }

func New(db *sql.DB) circulation.Store { return &repo{db: db} }

// Tx runs fn inside one database transaction. Any error from fn rolls
// everything back.
func (r *repo) Tx(ctx context.Context, fn func(circulation.TxOps) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&txOps{tx: tx}); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

func (r *repo) ListIssued(ctx context.Context) ([]model.IssuedRow, error) {
	const q = `
		SELECT
			i.id          AS issue_id,
			i.book_id     AS book_id,
			b.book_name   AS book_name,
			b.author_name AS author_name,
			i.user_id     AS user_id,
			u.name        AS borrower_name,
			u.email       AS email,
			i.issued_date AS issued_date,
			i.due_date    AS due_date
		FROM book_issues i
		JOIN books b ON b.id = i.book_id
		JOIN users u ON u.id = i.user_id
		WHERE i.returned_date IS NULL
		ORDER BY i.issued_date DESC, i.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.IssuedRow
	for rows.Next() {
		var ir model.IssuedRow
		if err := rows.Scan(
			&ir.IssueID, &ir.BookID, &ir.BookName, &ir.AuthorName,
			&ir.UserID, &ir.BorrowerName, &ir.Email, &ir.IssuedDate, &ir.DueDate,
		); err != nil {
			return nil, err
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}

func (r *repo) BookWithActiveIssue(ctx context.Context, bookID int64) (*model.Book, *model.BookIssue, error) {
	const bq = `
		SELECT id, book_name, author_name, category, publication_year, library_location, status, created_at
		FROM books
		WHERE id = $1`
	b := &model.Book{}
	err := r.db.QueryRowContext(ctx, bq, bookID).Scan(
		&b.ID, &b.Name, &b.AuthorName, &b.Category,
		&b.PublicationYear, &b.Location, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	const iq = `
		SELECT id, book_id, user_id, issued_date, due_date, returned_date
		FROM book_issues
		WHERE book_id = $1 AND returned_date IS NULL
		ORDER BY issued_date DESC, id DESC
		LIMIT 1`
	is := &model.BookIssue{}
	err = r.db.QueryRowContext(ctx, iq, bookID).Scan(
		&is.ID, &is.BookID, &is.UserID, &is.IssuedDate, &is.DueDate, &is.ReturnedDate,
	)
	if err == sql.ErrNoRows {
		return b, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return b, is, nil
}

type txOps struct{ tx *sql.Tx }

func (t *txOps) BookForUpdate(ctx context.Context, bookID int64) (*model.Book, error) {
	const q = `
		SELECT id, book_name, author_name, category, publication_year, library_location, status, created_at
		FROM books
		WHERE id = $1
		FOR UPDATE`
	b := &model.Book{}
	err := t.tx.QueryRowContext(ctx, q, bookID).Scan(
		&b.ID, &b.Name, &b.AuthorName, &b.Category,
		&b.PublicationYear, &b.Location, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (t *txOps) UserExists(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var ok bool
	err := t.tx.QueryRowContext(ctx, q, userID).Scan(&ok)
	return ok, err
}

func (t *txOps) InsertIssue(ctx context.Context, is *model.BookIssue) (int64, error) {
	const q = `
		INSERT INTO book_issues (book_id, user_id, issued_date, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := t.tx.QueryRowContext(ctx, q, is.BookID, is.UserID, is.IssuedDate, is.DueDate).Scan(&id)
	return id, err
}

func (t *txOps) SetBookStatus(ctx context.Context, bookID int64, st model.BookStatus) error {
	const q = `UPDATE books SET status = $2 WHERE id = $1`
	_, err := t.tx.ExecContext(ctx, q, bookID, st)
	return err
}

func (t *txOps) LatestOpenIssue(ctx context.Context, issueID, bookID int64) (*model.BookIssue, error) {
	// zero selector means "unset"; ties on issued_date break to the
	// newer row
	const q = `
		SELECT id, book_id, user_id, issued_date, due_date, returned_date
		FROM book_issues
		WHERE returned_date IS NULL
		  AND ($1 = 0 OR id = $1)
		  AND ($2 = 0 OR book_id = $2)
		ORDER BY issued_date DESC, id DESC
		LIMIT 1
		FOR UPDATE`
	is := &model.BookIssue{}
	err := t.tx.QueryRowContext(ctx, q, issueID, bookID).Scan(
		&is.ID, &is.BookID, &is.UserID, &is.IssuedDate, &is.DueDate, &is.ReturnedDate,
	)
	if err != nil {
		return nil, err
	}
	return is, nil
}

func (t *txOps) CloseIssue(ctx context.Context, issueID int64, returnedAt time.Time) error {
	const q = `
		UPDATE book_issues
		SET returned_date = $2
		WHERE id = $1`
	_, err := t.tx.ExecContext(ctx, q, issueID, returnedAt)
	return err
}
