package invoice

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
)

type invoiceResponse struct {
	ID         uuid.UUID      `json:"id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Amount     int64          `json:"amount"`
	Status     invoice.Status `json:"status"`
	Date       string         `json:"date"`
}

type rowResponse struct {
	ID       uuid.UUID      `json:"id"`
	Amount   int64          `json:"amount"`
	Status   invoice.Status `json:"status"`
	Date     string         `json:"date"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	ImageURL string         `json:"image_url"`
}

type pageResponse struct {
	Query       string        `json:"query"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	Invoices    []rowResponse `json:"invoices"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields invoice.FieldErrors `json:"fields,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     inv.Status,
		Date:       inv.Date.Format(time.DateOnly),
	}
}

func toPageResponse(p *invoice.Page) pageResponse {
	resp := pageResponse{
		Query:       p.Query,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		Invoices:    make([]rowResponse, len(p.Rows)),
	}

	for i, row := range p.Rows {
		resp.Invoices[i] = rowResponse{
			ID:       row.ID,
			Amount:   row.Amount,
			Status:   row.Status,
			Date:     row.Date.Format(time.DateOnly),
			Name:     row.Name,
			Email:    row.Email,
			ImageURL: row.ImageURL,
		}
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
