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

// HolderService defines the account holder operations the handler needs.
type HolderService interface {
	CreateHolder(ctx context.Context, input usecase.CreateHolderInput) (*domain.AccountHolder, error)
	GetHolder(ctx context.Context, id string) (*domain.AccountHolder, error)
	ListHolders(ctx context.Context, input usecase.ListHoldersInput) ([]*domain.AccountHolder, error)
}

// HolderHandler handles account holder HTTP requests.
type HolderHandler struct {
	service HolderService
}

// NewHolderHandler creates a new HolderHandler.
func NewHolderHandler(service HolderService) *HolderHandler {
	return &HolderHandler{service: service}
}

// Routes registers the account holder routes on the given router. The
// per-holder report routes are registered separately so both can share the
// /holders subtree.
func (h *HolderHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// Create handles POST /holders
func (h *HolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	holder, err := h.service.CreateHolder(r.Context(), req.ToUseCaseInput())
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.HolderFromDomain(holder))
}

// Get handles GET /holders/{id}
func (h *HolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	holder, err := h.service.GetHolder(r.Context(), id)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HolderFromDomain(holder))
}

// List handles GET /holders
func (h *HolderHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListHoldersInput{
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}

	holders, err := h.service.ListHolders(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := dto.ListHoldersResponse{
		Holders: make([]dto.HolderResponse, len(holders)),
		Count:   len(holders),
	}
	for i, holder := range holders {
		resp.Holders[i] = dto.HolderFromDomain(holder)
	}

	writeJSON(w, http.StatusOK, resp)
}
