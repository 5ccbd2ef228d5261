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

// NoteService defines the promissory note operations the handler needs.
type NoteService interface {
	CreateNote(ctx context.Context, input usecase.CreateNoteInput) (*domain.PromissoryNote, error)
	GetNote(ctx context.Context, id string) (*domain.PromissoryNote, error)
	SettleNote(ctx context.Context, input usecase.SettleNoteInput) (*domain.PromissoryNote, error)
}

// NoteHandler handles promissory note HTTP requests.
type NoteHandler struct {
	service NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// Routes returns the routes for promissory notes.
func (h *NoteHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/settle", h.Settle)
	return r
}

// Create handles POST /notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "dates must be in YYYY-MM-DD format")
		return
	}

	note, err := h.service.CreateNote(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NoteFromDomain(note))
}

// Get handles GET /notes/{id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, err := h.service.GetNote(r.Context(), id)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NoteFromDomain(note))
}

// Settle handles POST /notes/{id}/settle
func (h *NoteHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.SettleNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	note, err := h.service.SettleNote(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NoteFromDomain(note))
}
