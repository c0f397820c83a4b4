package bookrepo

import (
	"context"
	"database/sql"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context, category string) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
		INSERT INTO books (book_name, author_name, category, publication_year, library_location, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		b.Name, b.AuthorName, b.Category, b.PublicationYear, b.Location, b.Status,
	).Scan(&id)
	return id, err
}

func (r *repo) List(ctx context.Context, category string) ([]model.Book, error) {
	const q = `
		SELECT id, book_name, author_name, category, publication_year, library_location, status, created_at
		FROM books
		WHERE ($1 = '' OR category = $1)
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Name, &b.AuthorName, &b.Category,
			&b.PublicationYear, &b.Location, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
		SELECT id, book_name, author_name, category, publication_year, library_location, status, created_at
		FROM books
		WHERE id = $1`
	b := &model.Book{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Name, &b.AuthorName, &b.Category,
		&b.PublicationYear, &b.Location, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
		UPDATE books
		SET book_name = $2,
			author_name = $3,
			category = $4,
			publication_year = $5,
			library_location = $6
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Name, b.AuthorName, b.Category, b.PublicationYear, b.Location,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
