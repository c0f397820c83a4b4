// Package upi builds UPI deep links for collect requests.
package upi

import (
	"fmt"
	"net/url"
)

// Params describe one collect request. Reference travels as "tr" so the
// payer app echoes it back and the payment row can be reconciled.
type Params struct {
	PayeeVPA  string
	PayeeName string
	Amount    float64
	Note      string
	Reference string
}

const currency = "INR"

// CollectURI renders an upi://pay link. The amount is always formatted
// with two decimals; query keys are emitted in sorted order so the same
// inputs always produce the same URI.
func CollectURI(p Params) string {
	q := url.Values{}
	q.Set("pa", p.PayeeVPA)
	q.Set("pn", p.PayeeName)
	q.Set("am", fmt.Sprintf("%.2f", p.Amount))
	q.Set("cu", currency)
	if p.Note != "" {
		q.Set("tn", p.Note)
	}
	if p.Reference != "" {
		q.Set("tr", p.Reference)
	}
	return "upi://pay?" + q.Encode()
}
