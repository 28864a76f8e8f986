package customer

import "github.com/google/uuid"

// Customer is a billed party. Customers are read-only in this application.
type Customer struct {
	ID       uuid.UUID
	Name     string
	Email    string
	ImageURL string
}

// Option is the slim view of a customer used to populate invoice forms.
type Option struct {
	ID   uuid.UUID
	Name string
}

// Summary is a customer with totals over its invoices.
type Summary struct {
	Customer
	TotalInvoices int
	TotalPending  int64 // cents
	TotalPaid     int64 // cents
}
