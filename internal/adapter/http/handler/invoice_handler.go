package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/arledger/internal/adapter/http/dto"
	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
)

// InvoiceService defines the invoice operations the handler needs.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoicesByHolder(ctx context.Context, input usecase.ListInvoicesByHolderInput) ([]*domain.Invoice, error)
	CancelInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

// PaymentService defines the payment operations the handler needs.
type PaymentService interface {
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Payment, error)
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]*domain.Payment, error)
}

// InvoiceHandler handles invoice and payment HTTP requests.
type InvoiceHandler struct {
	invoices InvoiceService
	payments PaymentService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoices InvoiceService, payments PaymentService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, payments: payments}
}

// Routes returns the routes for invoices.
func (h *InvoiceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/cancel", h.Cancel)
	r.Post("/{id}/payments", h.RecordPayment)
	r.Get("/{id}/payments", h.ListPayments)
	return r
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "dates must be in YYYY-MM-DD format")
		return
	}

	invoice, err := h.invoices.CreateInvoice(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvoiceFromDomain(invoice))
}

// Get handles GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	invoice, err := h.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Cancel handles POST /invoices/{id}/cancel
func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	invoice, err := h.invoices.CancelInvoice(r.Context(), id)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// RecordPayment handles POST /invoices/{id}/payments
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "paid_at must be in YYYY-MM-DD format")
		return
	}

	payment, err := h.payments.RecordPayment(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// ListPayments handles GET /invoices/{id}/payments
func (h *InvoiceHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payments, err := h.payments.ListPaymentsByInvoice(r.Context(), id)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := dto.ListPaymentsResponse{
		Payments: make([]dto.PaymentResponse, len(payments)),
		Count:    len(payments),
	}
	for i, p := range payments {
		resp.Payments[i] = dto.PaymentFromDomain(p)
	}

	writeJSON(w, http.StatusOK, resp)
}
