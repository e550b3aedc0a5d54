package warranty

import "time"

// Contract is a signed installation contract carrying warranty coverage.
type Contract struct {
	ID            int64     `json:"id"`
	ContractNo    string    `json:"contract_no"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	SignedAt      time.Time `json:"signed_at"`
	Items         []Item    `json:"items,omitempty"`
}

// Item is one piece of installed merchandise under warranty.
type Item struct {
	ID            int64     `json:"id"`
	ContractID    int64     `json:"contract_id"`
	ProductName   string    `json:"product_name"`
	SerialNo      string    `json:"serial_no,omitempty"`
	WarrantyYears int       `json:"warranty_years"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Active reports whether the item is still under warranty at the given time.
func (i Item) Active(now time.Time) bool {
	return now.Before(i.ExpiresAt)
}
