package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/arledger/internal/domain"
)

// HolderResponse represents an account holder in API responses.
type HolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxNumber string    `json:"tax_number,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HolderFromDomain converts a domain account holder to a response.
func HolderFromDomain(h *domain.AccountHolder) HolderResponse {
	return HolderResponse{
		ID:        h.ID,
		Name:      h.Name,
		TaxNumber: h.TaxNumber,
		Email:     h.Email,
		Phone:     h.Phone,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// ListHoldersResponse wraps a list of account holders.
type ListHoldersResponse struct {
	Holders []HolderResponse `json:"holders"`
	Count   int              `json:"count"`
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	HolderID      string          `json:"holder_id"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date,omitempty"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceFromDomain converts a domain invoice to a response.
func InvoiceFromDomain(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		HolderID:      inv.HolderID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     formatDate(inv.IssueDate),
		DueDate:       formatDate(inv.DueDate),
		GrandTotal:    inv.GrandTotal,
		PaidAmount:    inv.PaidAmount,
		Outstanding:   inv.Outstanding(),
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ListInvoicesResponse wraps a list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Count    int               `json:"count"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	HolderID  string          `json:"holder_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    string          `json:"paid_at"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		HolderID:  p.HolderID,
		Amount:    p.Amount,
		PaidAt:    formatDate(p.PaidAt),
		Method:    p.Method,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

// ListPaymentsResponse wraps a list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Count    int               `json:"count"`
}

// TransactionResponse represents one statement line.
type TransactionResponse struct {
	ID             string          `json:"id"`
	InvoiceID      string          `json:"invoice_id"`
	Date           string          `json:"date"`
	Kind           string          `json:"kind"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// StatementResponse represents a holder's statement.
type StatementResponse struct {
	HolderID       string                `json:"holder_id"`
	GeneratedAt    time.Time             `json:"generated_at"`
	Transactions   []TransactionResponse `json:"transactions"`
	TotalDebit     decimal.Decimal       `json:"total_debit"`
	TotalCredit    decimal.Decimal       `json:"total_credit"`
	ClosingBalance decimal.Decimal       `json:"closing_balance"`
}

// StatementFromDomain converts a domain statement to a response.
func StatementFromDomain(s *domain.Statement) StatementResponse {
	txns := make([]TransactionResponse, len(s.Transactions))
	for i, t := range s.Transactions {
		txns[i] = TransactionResponse{
			ID:             t.ID,
			InvoiceID:      t.InvoiceID,
			Date:           formatDate(t.Date),
			Kind:           string(t.Kind),
			Description:    t.Description,
			Debit:          t.Debit,
			Credit:         t.Credit,
			RunningBalance: t.RunningBalance,
		}
	}
	return StatementResponse{
		HolderID:       s.HolderID,
		GeneratedAt:    s.GeneratedAt,
		Transactions:   txns,
		TotalDebit:     s.TotalDebit,
		TotalCredit:    s.TotalCredit,
		ClosingBalance: s.ClosingBalance,
	}
}

// AgingBucketResponse represents one aging bucket.
type AgingBucketResponse struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SkippedDocumentResponse reports a document excluded from aging.
type SkippedDocumentResponse struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// AgingReportResponse represents an aging report.
type AgingReportResponse struct {
	AsOf             string                    `json:"as_of"`
	Buckets          []AgingBucketResponse     `json:"buckets"`
	TotalOutstanding decimal.Decimal           `json:"total_outstanding"`
	Skipped          []SkippedDocumentResponse `json:"skipped,omitempty"`
}

// AgingReportFromDomain converts a domain aging report to a response.
func AgingReportFromDomain(r domain.AgingReport) AgingReportResponse {
	buckets := make([]AgingBucketResponse, len(r.Buckets))
	for i, b := range r.Buckets {
		buckets[i] = AgingBucketResponse{Label: b.Label, Amount: b.Amount}
	}
	skipped := make([]SkippedDocumentResponse, len(r.Skipped))
	for i, s := range r.Skipped {
		skipped[i] = SkippedDocumentResponse{ID: s.ID, Reason: s.Reason}
	}
	return AgingReportResponse{
		AsOf:             formatDate(r.AsOf),
		Buckets:          buckets,
		TotalOutstanding: r.TotalOutstanding,
		Skipped:          skipped,
	}
}

// NoteResponse represents a promissory note in API responses.
type NoteResponse struct {
	ID            string          `json:"id"`
	HolderID      string          `json:"holder_id"`
	NoteNumber    string          `json:"note_number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NoteFromDomain converts a domain promissory note to a response.
func NoteFromDomain(n *domain.PromissoryNote) NoteResponse {
	return NoteResponse{
		ID:            n.ID,
		HolderID:      n.HolderID,
		NoteNumber:    n.NoteNumber,
		IssueDate:     formatDate(n.IssueDate),
		DueDate:       formatDate(n.DueDate),
		Amount:        n.Amount,
		SettledAmount: n.SettledAmount,
		Outstanding:   n.Outstanding(),
		Status:        string(n.Status),
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

// ListNotesResponse wraps a list of promissory notes.
type ListNotesResponse struct {
	Notes []NoteResponse `json:"notes"`
	Count int            `json:"count"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse represents a successful authentication.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
