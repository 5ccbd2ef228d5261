package domain

import "time"

// Event types
const (
	EventTypeHolderCreated    = "holder.created"
	EventTypeInvoiceCreated   = "invoice.created"
	EventTypeInvoiceCancelled = "invoice.cancelled"
	EventTypePaymentRecorded  = "payment.recorded"
	EventTypeNoteCreated      = "note.created"
	EventTypeNoteSettled      = "note.settled"
)

// Aggregate types
const (
	AggregateTypeHolder  = "holder"
	AggregateTypeInvoice = "invoice"
	AggregateTypeNote    = "note"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// InvoiceCreatedEvent payload
type InvoiceCreatedEvent struct {
	InvoiceID     string `json:"invoice_id"`
	HolderID      string `json:"holder_id"`
	InvoiceNumber string `json:"invoice_number"`
	GrandTotal    string `json:"grand_total"`
	DueDate       string `json:"due_date"`
}

// PaymentRecordedEvent payload
type PaymentRecordedEvent struct {
	PaymentID string `json:"payment_id"`
	InvoiceID string `json:"invoice_id"`
	HolderID  string `json:"holder_id"`
	Amount    string `json:"amount"`
	PaidAt    string `json:"paid_at"`
}

// NoteSettledEvent payload
type NoteSettledEvent struct {
	NoteID   string `json:"note_id"`
	HolderID string `json:"holder_id"`
	Amount   string `json:"amount"`
}
