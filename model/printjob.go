// model/printjob.go
package model

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PrintJob is a submitted document. TotalCost is computed once at
// creation (TotalPages * CostPerPage) and frozen; only PaymentStatus
// changes afterwards.
type PrintJob struct {
	ID            int64         `json:"print_id"`
	UserID        int64         `json:"user_id"`
	FileName      string        `json:"file_name"`
	StoragePath   string        `json:"storage_path"`
	TotalPages    int64         `json:"total_pages"`
	CostPerPage   float64       `json:"cost_per_page"`
	TotalCost     float64       `json:"total_cost"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}
