package paymentsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
	"github.com/usrinivasan240-cpu/e-libaray.cto/util/metrics"
	"github.com/usrinivasan240-cpu/e-libaray.cto/util/upi"
)

// errors used by controllers

type ErrCode string

const (
	ErrJobNotFound     ErrCode = "PRINT_JOB_NOT_FOUND"
	ErrPaymentNotFound ErrCode = "PAYMENT_NOT_FOUND"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrAlreadyPaid     ErrCode = "ALREADY_PAID"
	ErrBadOutcome      ErrCode = "BAD_OUTCOME"
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
type TxOps interface {
	PrintJobForUpdate(ctx context.Context, printID int64) (*model.PrintJob, error)
	InsertPayment(ctx context.Context, p *model.Payment) (int64, error)
	PaymentForUpdate(ctx context.Context, paymentID int64) (*model.Payment, error)

	// SetPaymentOutcome overwrites the attempt's transaction id, status
	// and paid_at; verification is idempotent by replacement.
	SetPaymentOutcome(ctx context.Context, paymentID int64, transactionID string, st model.PaymentStatus, paidAt *time.Time) error
	SetJobPaymentStatus(ctx context.Context, printID int64, st model.PaymentStatus) error
}

// Store is the payment ledger. Tx runs fn atomically so the payment row
// and its print job never disagree after a verification.
type Store interface {
	Tx(ctx context.Context, fn func(TxOps) error) error
	PaymentWithJob(ctx context.Context, paymentID int64) (*model.Payment, *model.PrintJob, error)
}

// Config carries the collect-URI payee identity.
type Config struct {
	PayeeVPA  string
	PayeeName string
}

// Initiated is a fresh PENDING attempt plus the collect link handed to
// the payer app.
type Initiated struct {
	Payment *model.Payment `json:"payment"`
	PayURI  string         `json:"pay_uri"`
}

// JobSummary is the minimal print-job view returned with a payment.
type JobSummary struct {
	PrintID       int64               `json:"print_id"`
	TotalCost     float64             `json:"total_cost"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
}

type StatusOut struct {
	Payment model.Payment `json:"payment"`
	Job     JobSummary    `json:"print_job"`
}

type Service interface {
	// Initiate opens a new PENDING attempt for the requester's own
	// print job and returns the UPI collect URI. The job itself is not
	// touched; a job already at SUCCESS refuses new attempts.
	Initiate(ctx context.Context, printID int64, method string, requesterID int64) (*Initiated, error)

	// Verify records the caller-asserted outcome for an attempt and
	// propagates it onto the print job in the same transaction.
	Verify(ctx context.Context, paymentID int64, transactionID string, outcome model.PaymentStatus, requesterID int64) (*model.Payment, error)

	// Status is readable by the attempt's owner and by admins.
	Status(ctx context.Context, paymentID, requesterID int64, role model.Role) (*StatusOut, error)
}

type service struct {
	store Store
	cfg   Config
}

func New(store Store, cfg Config) Service { return &service{store: store, cfg: cfg} }

func (s *service) Initiate(ctx context.Context, printID int64, method string, requesterID int64) (*Initiated, error) {
	var (
		pay *model.Payment
		uri string
	)

	err := s.store.Tx(ctx, func(tx TxOps) error {
		job, err := tx.PrintJobForUpdate(ctx, printID)
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrJobNotFound)
		}
		if err != nil {
			return err
		}
		if job.UserID != requesterID {
			return makeErr(ErrNotOwner)
		}
		if job.PaymentStatus == model.PaymentSuccess {
			return makeErr(ErrAlreadyPaid)
		}

		p := &model.Payment{
			UserID:    requesterID,
			PrintID:   printID,
			Method:    method,
			Status:    model.PaymentPending,
			CreatedAt: time.Now().UTC(),
		}
		id, err := tx.InsertPayment(ctx, p)
		if err != nil {
			return err
		}
		p.ID = id

		uri = upi.CollectURI(upi.Params{
			PayeeVPA:  s.cfg.PayeeVPA,
			PayeeName: s.cfg.PayeeName,
			Amount:    job.TotalCost,
			Note:      fmt.Sprintf("Print job %d", printID),
			Reference: fmt.Sprintf("PAY%d", id),
		})
		pay = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsInitiatedTotal.Inc()
	return &Initiated{Payment: pay, PayURI: uri}, nil
}

func (s *service) Verify(ctx context.Context, paymentID int64, transactionID string, outcome model.PaymentStatus, requesterID int64) (*model.Payment, error) {
	if outcome != model.PaymentSuccess && outcome != model.PaymentFailed {
		return nil, makeErr(ErrBadOutcome)
	}

	var out *model.Payment

	err := s.store.Tx(ctx, func(tx TxOps) error {
		p, err := tx.PaymentForUpdate(ctx, paymentID)
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrPaymentNotFound)
		}
		if err != nil {
			return err
		}
		if p.UserID != requesterID {
			return makeErr(ErrNotOwner)
		}

		var paidAt *time.Time
		if outcome == model.PaymentSuccess {
			now := time.Now().UTC()
			paidAt = &now
		}
		if err := tx.SetPaymentOutcome(ctx, p.ID, transactionID, outcome, paidAt); err != nil {
			return err
		}
		if err := tx.SetJobPaymentStatus(ctx, p.PrintID, outcome); err != nil {
			return err
		}

		p.TransactionID = &transactionID
		p.Status = outcome
		p.PaidAt = paidAt
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsVerifiedTotal.WithLabelValues(string(outcome)).Inc()
	return out, nil
}

func (s *service) Status(ctx context.Context, paymentID, requesterID int64, role model.Role) (*StatusOut, error) {
	p, job, err := s.store.PaymentWithJob(ctx, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrPaymentNotFound)
	}
	if err != nil {
		return nil, err
	}

	admin := role == model.RoleLibraryAdmin || role == model.RoleSuperAdmin
	if p.UserID != requesterID && !admin {
		return nil, makeErr(ErrNotOwner)
	}

	return &StatusOut{
		Payment: *p,
		Job: JobSummary{
			PrintID:       job.ID,
			TotalCost:     job.TotalCost,
			PaymentStatus: job.PaymentStatus,
		},
	}, nil
}
