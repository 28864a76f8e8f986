package view

import (
	"context"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
)

const dbTimeout = 5 * time.Second

// FormatCurrency formats cents as US dollars.
func FormatCurrency(cents int64) string {
	return money.New(cents, money.USD).Display()
}

// FormatDate formats a time.Time the way the invoice tables show it.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatStatus renders an invoice status as a colored label.
func FormatStatus(s invoice.Status) string {
	if s == invoice.StatusPaid {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("Paid")
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("Pending")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}
