package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateInvoiceRequest{
		HolderID:      "h-1",
		InvoiceNumber: "INV-001",
		IssueDate:     "2024-01-15",
		DueDate:       "2024-02-14",
		GrandTotal:    decimal.NewFromInt(100),
		PaidAmount:    decimal.NewFromInt(40),
	}

	input, err := req.ToUseCaseInput()
	require.NoError(t, err)

	assert.Equal(t, "h-1", input.HolderID)
	assert.Equal(t, "INV-001", input.InvoiceNumber)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), input.IssueDate)
	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), input.DueDate)
	assert.True(t, input.GrandTotal.Equal(decimal.NewFromInt(100)))
}

func TestCreateInvoiceRequest_ToUseCaseInput_NoDueDate(t *testing.T) {
	req := &CreateInvoiceRequest{
		HolderID:      "h-1",
		InvoiceNumber: "INV-002",
		IssueDate:     "2024-01-15",
		GrandTotal:    decimal.NewFromInt(50),
	}

	input, err := req.ToUseCaseInput()
	require.NoError(t, err)
	assert.True(t, input.DueDate.IsZero())
}

func TestCreateInvoiceRequest_ToUseCaseInput_BadDate(t *testing.T) {
	req := &CreateInvoiceRequest{
		HolderID:      "h-1",
		InvoiceNumber: "INV-003",
		IssueDate:     "15/01/2024",
		GrandTotal:    decimal.NewFromInt(50),
	}

	_, err := req.ToUseCaseInput()
	assert.Error(t, err)
}

func TestRecordPaymentRequest_ToUseCaseInput(t *testing.T) {
	req := &RecordPaymentRequest{
		Amount: decimal.NewFromInt(25),
		PaidAt: "2024-03-01",
		Method: "wire",
	}

	input, err := req.ToUseCaseInput("inv-1")
	require.NoError(t, err)

	assert.Equal(t, "inv-1", input.InvoiceID)
	require.NotNil(t, input.PaidAt)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *input.PaidAt)
}

func TestRecordPaymentRequest_ToUseCaseInput_NoPaidAt(t *testing.T) {
	req := &RecordPaymentRequest{Amount: decimal.NewFromInt(25)}

	input, err := req.ToUseCaseInput("inv-1")
	require.NoError(t, err)
	assert.Nil(t, input.PaidAt)
}
