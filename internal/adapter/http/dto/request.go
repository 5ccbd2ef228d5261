package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
)

// CreateHolderRequest represents the request to create an account holder.
type CreateHolderRequest struct {
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ToUseCaseInput converts the request to a use case input.
func (r *CreateHolderRequest) ToUseCaseInput() usecase.CreateHolderInput {
	return usecase.CreateHolderInput{
		Name:      r.Name,
		TaxNumber: r.TaxNumber,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// CreateInvoiceRequest represents the request to create an invoice.
// Dates are calendar dates in YYYY-MM-DD form; due_date may be omitted when
// the upstream document carries none.
type CreateInvoiceRequest struct {
	HolderID      string          `json:"holder_id"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date,omitempty"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	PaidAmount    decimal.Decimal `json:"paid_amount,omitempty"`
}

// ToUseCaseInput converts the request to a use case input.
func (r *CreateInvoiceRequest) ToUseCaseInput() (usecase.CreateInvoiceInput, error) {
	issueDate, err := domain.ParseDate(r.IssueDate)
	if err != nil {
		return usecase.CreateInvoiceInput{}, err
	}

	var dueDate time.Time
	if r.DueDate != "" {
		dueDate, err = domain.ParseDate(r.DueDate)
		if err != nil {
			return usecase.CreateInvoiceInput{}, err
		}
	}

	return usecase.CreateInvoiceInput{
		HolderID:      r.HolderID,
		InvoiceNumber: r.InvoiceNumber,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		GrandTotal:    r.GrandTotal,
		PaidAmount:    r.PaidAmount,
	}, nil
}

// RecordPaymentRequest represents the request to record a payment against
// an invoice. paid_at defaults to the invoice issue date when omitted.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    string          `json:"paid_at,omitempty"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// ToUseCaseInput converts the request to a use case input.
func (r *RecordPaymentRequest) ToUseCaseInput(invoiceID string) (usecase.RecordPaymentInput, error) {
	input := usecase.RecordPaymentInput{
		InvoiceID: invoiceID,
		Amount:    r.Amount,
		Method:    r.Method,
		Reference: r.Reference,
	}

	if r.PaidAt != "" {
		paidAt, err := domain.ParseDate(r.PaidAt)
		if err != nil {
			return usecase.RecordPaymentInput{}, err
		}
		input.PaidAt = &paidAt
	}

	return input, nil
}

// CreateNoteRequest represents the request to create a promissory note.
type CreateNoteRequest struct {
	HolderID   string          `json:"holder_id"`
	NoteNumber string          `json:"note_number"`
	IssueDate  string          `json:"issue_date"`
	DueDate    string          `json:"due_date"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts the request to a use case input.
func (r *CreateNoteRequest) ToUseCaseInput() (usecase.CreateNoteInput, error) {
	issueDate, err := domain.ParseDate(r.IssueDate)
	if err != nil {
		return usecase.CreateNoteInput{}, err
	}

	var dueDate time.Time
	if r.DueDate != "" {
		dueDate, err = domain.ParseDate(r.DueDate)
		if err != nil {
			return usecase.CreateNoteInput{}, err
		}
	}

	return usecase.CreateNoteInput{
		HolderID:   r.HolderID,
		NoteNumber: r.NoteNumber,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		Amount:     r.Amount,
	}, nil
}

// SettleNoteRequest represents the request to settle a promissory note.
type SettleNoteRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts the request to a use case input.
func (r *SettleNoteRequest) ToUseCaseInput(noteID string) usecase.SettleNoteInput {
	return usecase.SettleNoteInput{
		NoteID: noteID,
		Amount: r.Amount,
	}
}

// LoginRequest represents the request to authenticate a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest represents the request to create a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts the request to a use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}
