package payment

type InitiatePaymentReq struct {
	PrintID int64  `json:"print_id" validate:"required,gt=0"`
	Method  string `json:"payment_method" validate:"required"`
}

type VerifyPaymentReq struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"payment_status" validate:"required,oneof=SUCCESS FAILED"`
}
