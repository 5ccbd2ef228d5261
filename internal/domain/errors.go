package domain

import "errors"

var (
	// Holder errors
	ErrHolderNotFound = errors.New("account holder not found")
	ErrMissingHolder  = errors.New("invoice must reference an account holder")

	// Invoice errors
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrMissingInvoiceNumber = errors.New("invoice number is required")
	ErrMissingIssueDate     = errors.New("invoice issue date is required")
	ErrMissingDueDate       = errors.New("invoice due date is required")
	ErrInvalidAmount        = errors.New("amount must be non-negative")
	ErrInvalidStatus        = errors.New("unknown invoice status")
	ErrInvoiceCancelled     = errors.New("invoice is cancelled")

	// Payment errors
	ErrPaymentNotPositive        = errors.New("payment amount must be positive")
	ErrPaymentExceedsOutstanding = errors.New("payment exceeds outstanding amount")

	// Promissory note errors
	ErrNoteNotFound       = errors.New("promissory note not found")
	ErrMissingNoteNumber  = errors.New("note number is required")
	ErrNoteAlreadySettled = errors.New("promissory note is already settled")
)
