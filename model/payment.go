// model/payment.go
package model

import "time"

// Payment is one collection attempt against a print job. A job may
// accumulate several attempts; once one of them drives the job to
// SUCCESS no new attempt may be started.
type Payment struct {
	ID            int64         `json:"payment_id"`
	UserID        int64         `json:"user_id"`
	PrintID       int64         `json:"print_id"`
	Method        string        `json:"payment_method"`
	TransactionID *string       `json:"transaction_id,omitempty"`
	Status        PaymentStatus `json:"payment_status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
