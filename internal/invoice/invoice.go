package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusPaid}

// Invoice is a billing record as stored in the invoices table.
type Invoice struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     int64 // Amount in cents
	Status     Status
	Date       time.Time
}

// Row is an invoice joined with the customer it bills, as shown in the invoices table.
type Row struct {
	ID       uuid.UUID
	Amount   int64 // Amount in cents
	Date     time.Time
	Status   Status
	Name     string
	Email    string
	ImageURL string
}
