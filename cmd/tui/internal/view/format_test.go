package view

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{4500, "$45.00"},
		{123456, "$1,234.56"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.cents))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Dec 6, 2022", FormatDate(time.Date(2022, 12, 6, 0, 0, 0, 0, time.UTC)))
}

func TestErrorMessage(t *testing.T) {
	t.Run("invoice error lists field messages in key order", func(t *testing.T) {
		err := &invoice.Error{
			Kind:    invoice.KindValidation,
			Message: invoice.MsgCreateInvalid,
			Fields: invoice.FieldErrors{
				invoice.FieldStatus: {"Please select an invoice status."},
				invoice.FieldAmount: {"Please enter an amount greater than $0."},
			},
		}

		got := errorMessage(err)

		assert.Contains(t, got, invoice.MsgCreateInvalid+" Please enter an amount greater than $0. Please select an invoice status.")
	})

	t.Run("other errors are shown verbatim", func(t *testing.T) {
		assert.Equal(t, "Error: boom", errorMessage(errors.New("boom")))
	})
}
