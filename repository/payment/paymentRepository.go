// repository/payment/repo.go
package paymentrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
	paymentsvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/payment"
)

type repo struct{ db *sql.DB }

func New(db *sql.DB) paymentsvc.Store { return &repo{db: db} }

func (r *repo) Tx(ctx context.Context, fn func(paymentsvc.TxOps) error) (err error) {
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

func (r *repo) PaymentWithJob(ctx context.Context, paymentID int64) (*model.Payment, *model.PrintJob, error) {
	const q = `
		SELECT
			p.id, p.user_id, p.print_id, p.payment_method, p.transaction_id,
			p.payment_status, p.paid_at, p.created_at,
			j.id, j.user_id, j.file_name, j.storage_path, j.total_pages,
			j.cost_per_page, j.total_cost, j.payment_status, j.created_at
		FROM payments p
		JOIN print_jobs j ON j.id = p.print_id
		WHERE p.id = $1`
	p := &model.Payment{}
	j := &model.PrintJob{}
	err := r.db.QueryRowContext(ctx, q, paymentID).Scan(
		&p.ID, &p.UserID, &p.PrintID, &p.Method, &p.TransactionID,
		&p.Status, &p.PaidAt, &p.CreatedAt,
		&j.ID, &j.UserID, &j.FileName, &j.StoragePath, &j.TotalPages,
		&j.CostPerPage, &j.TotalCost, &j.PaymentStatus, &j.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	return p, j, nil
}

type txOps struct{ tx *sql.Tx }

func (t *txOps) PrintJobForUpdate(ctx context.Context, printID int64) (*model.PrintJob, error) {
	const q = `
		SELECT id, user_id, file_name, storage_path, total_pages, cost_per_page, total_cost, payment_status, created_at
		FROM print_jobs
		WHERE id = $1
		FOR UPDATE`
	j := &model.PrintJob{}
	err := t.tx.QueryRowContext(ctx, q, printID).Scan(
		&j.ID, &j.UserID, &j.FileName, &j.StoragePath, &j.TotalPages,
		&j.CostPerPage, &j.TotalCost, &j.PaymentStatus, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (t *txOps) InsertPayment(ctx context.Context, p *model.Payment) (int64, error) {
	const q = `
		INSERT INTO payments (user_id, print_id, payment_method, payment_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := t.tx.QueryRowContext(ctx, q, p.UserID, p.PrintID, p.Method, p.Status).Scan(&id)
	return id, err
}

func (t *txOps) PaymentForUpdate(ctx context.Context, paymentID int64) (*model.Payment, error) {
	const q = `
		SELECT id, user_id, print_id, payment_method, transaction_id, payment_status, paid_at, created_at
		FROM payments
		WHERE id = $1
		FOR UPDATE`
	p := &model.Payment{}
	err := t.tx.QueryRowContext(ctx, q, paymentID).Scan(
		&p.ID, &p.UserID, &p.PrintID, &p.Method, &p.TransactionID,
		&p.Status, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *txOps) SetPaymentOutcome(ctx context.Context, paymentID int64, transactionID string, st model.PaymentStatus, paidAt *time.Time) error {
	const q = `
		UPDATE payments
		SET transaction_id = $2,
			payment_status = $3,
			paid_at = $4
		WHERE id = $1`
	_, err := t.tx.ExecContext(ctx, q, paymentID, transactionID, st, paidAt)
	return err
}

func (t *txOps) SetJobPaymentStatus(ctx context.Context, printID int64, st model.PaymentStatus) error {
	const q = `UPDATE print_jobs SET payment_status = $2 WHERE id = $1`
	_, err := t.tx.ExecContext(ctx, q, printID, st)
	return err
}
