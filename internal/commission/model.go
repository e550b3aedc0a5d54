package commission

import "time"

// Status follows the payout lifecycle of a single commission entry.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusPaid     Status = "PAID"
)

// Entry is a commission earned by an agent on a closed quotation.
type Entry struct {
	ID           int64     `json:"id"`
	AgentID      int64     `json:"agent_id"`
	QuotationID  int64     `json:"quotation_id"`
	DocumentNo   string    `json:"document_no"`
	CustomerName string    `json:"customer_name"`
	BaseAmount   float64   `json:"base_amount"`
	Rate         float64   `json:"rate"`
	Amount       float64   `json:"amount"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// MonthlyStat aggregates an agent's commissions for one calendar month.
type MonthlyStat struct {
	Period      string  `json:"period"` // YYYY-MM
	Quotations  int     `json:"quotations"`
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
}
