package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/arledger/internal/adapter/http/dto"
	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
)

// StatementService defines the statement operations the handler needs.
type StatementService interface {
	GetStatement(ctx context.Context, holderID string) (*domain.Statement, error)
}

// AgingService defines the aging report operations the handler needs.
type AgingService interface {
	GetAgingReport(ctx context.Context, holderID string, asOf *time.Time) (domain.AgingReport, error)
	GetNoteAgingReport(ctx context.Context, holderID string, asOf *time.Time) (domain.AgingReport, error)
}

// HolderInvoiceService lists a holder's invoices for the holder sub-resource.
type HolderInvoiceService interface {
	ListInvoicesByHolder(ctx context.Context, input usecase.ListInvoicesByHolderInput) ([]*domain.Invoice, error)
}

// HolderNoteService lists a holder's promissory notes.
type HolderNoteService interface {
	ListNotesByHolder(ctx context.Context, input usecase.ListNotesByHolderInput) ([]*domain.PromissoryNote, error)
}

// StatementHandler serves per-holder derived reports: statements, aging and
// the holder's document listings.
type StatementHandler struct {
	statements StatementService
	aging      AgingService
	invoices   HolderInvoiceService
	notes      HolderNoteService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statements StatementService, aging AgingService, invoices HolderInvoiceService, notes HolderNoteService) *StatementHandler {
	return &StatementHandler{
		statements: statements,
		aging:      aging,
		invoices:   invoices,
		notes:      notes,
	}
}

// Routes returns the per-holder report routes, mounted under /holders.
func (h *StatementHandler) Routes(r chi.Router) {
	r.Get("/{id}/statement", h.GetStatement)
	r.Get("/{id}/aging", h.GetAgingReport)
	r.Get("/{id}/notes/aging", h.GetNoteAgingReport)
	r.Get("/{id}/invoices", h.ListInvoices)
	r.Get("/{id}/notes", h.ListNotes)
}

// GetStatement handles GET /holders/{id}/statement
func (h *StatementHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	holderID := chi.URLParam(r, "id")

	statement, err := h.statements.GetStatement(r.Context(), holderID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}

// GetAgingReport handles GET /holders/{id}/aging
// The optional as_of query parameter sets the reference date.
func (h *StatementHandler) GetAgingReport(w http.ResponseWriter, r *http.Request) {
	holderID := chi.URLParam(r, "id")

	asOf, ok := parseAsOf(w, r)
	if !ok {
		return
	}

	report, err := h.aging.GetAgingReport(r.Context(), holderID, asOf)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AgingReportFromDomain(report))
}

// GetNoteAgingReport handles GET /holders/{id}/notes/aging
func (h *StatementHandler) GetNoteAgingReport(w http.ResponseWriter, r *http.Request) {
	holderID := chi.URLParam(r, "id")

	asOf, ok := parseAsOf(w, r)
	if !ok {
		return
	}

	report, err := h.aging.GetNoteAgingReport(r.Context(), holderID, asOf)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AgingReportFromDomain(report))
}

// ListInvoices handles GET /holders/{id}/invoices
func (h *StatementHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListInvoicesByHolderInput{
		HolderID: chi.URLParam(r, "id"),
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	}

	invoices, err := h.invoices.ListInvoicesByHolder(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := dto.ListInvoicesResponse{
		Invoices: make([]dto.InvoiceResponse, len(invoices)),
		Count:    len(invoices),
	}
	for i, inv := range invoices {
		resp.Invoices[i] = dto.InvoiceFromDomain(inv)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListNotes handles GET /holders/{id}/notes
func (h *StatementHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListNotesByHolderInput{
		HolderID: chi.URLParam(r, "id"),
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	}

	notes, err := h.notes.ListNotesByHolder(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := dto.ListNotesResponse{
		Notes: make([]dto.NoteResponse, len(notes)),
		Count: len(notes),
	}
	for i, n := range notes {
		resp.Notes[i] = dto.NoteFromDomain(n)
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseAsOf reads the as_of query parameter. A write to w means the caller
// must stop handling the request.
func parseAsOf(w http.ResponseWriter, r *http.Request) (*time.Time, bool) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return nil, true
	}

	asOf, err := domain.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "as_of must be in YYYY-MM-DD format")
		return nil, false
	}

	return &asOf, true
}
