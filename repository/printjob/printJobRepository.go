package printjobrepo

import (
	"context"
	"database/sql"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

type Repo interface {
	Insert(ctx context.Context, j *model.PrintJob) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]model.PrintJob, error)
	ListAll(ctx context.Context) ([]model.PrintJob, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, j *model.PrintJob) (int64, error) {
	// total_cost is written once here and never updated
	const q = `
		INSERT INTO print_jobs (user_id, file_name, storage_path, total_pages, cost_per_page, total_cost, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		j.UserID, j.FileName, j.StoragePath, j.TotalPages, j.CostPerPage, j.TotalCost, j.PaymentStatus,
	).Scan(&id)
	return id, err
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.PrintJob, error) {
	const q = `
		SELECT id, user_id, file_name, storage_path, total_pages, cost_per_page, total_cost, payment_status, created_at
		FROM print_jobs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.scanJobs(ctx, q, userID)
}

func (r *repo) ListAll(ctx context.Context) ([]model.PrintJob, error) {
	const q = `
		SELECT id, user_id, file_name, storage_path, total_pages, cost_per_page, total_cost, payment_status, created_at
		FROM print_jobs
		ORDER BY created_at DESC, id DESC`
	return r.scanJobs(ctx, q)
}

func (r *repo) scanJobs(ctx context.Context, q string, args ...any) ([]model.PrintJob, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PrintJob
	for rows.Next() {
		var j model.PrintJob
		if err := rows.Scan(
			&j.ID, &j.UserID, &j.FileName, &j.StoragePath, &j.TotalPages,
			&j.CostPerPage, &j.TotalCost, &j.PaymentStatus, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
