package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
	"github.com/heartmarshall/culops-pantry/internal/service/assembly"
)

type assemblyService interface {
	AddAssembly(ctx context.Context, input assembly.AddAssemblyInput) (*assembly.AddAssemblyResult, error)
	GetMappings(ctx context.Context, input assembly.GetMappingsInput) ([]domain.AssemblyIDMapping, error)
	DeleteAssembly(ctx context.Context, input assembly.DeleteAssemblyInput) error
}

// AssemblyHandler serves assembly id mapping endpoints.
type AssemblyHandler struct {
	svc assemblyService
	log *slog.Logger
}

// NewAssemblyHandler creates an AssemblyHandler.
func NewAssemblyHandler(svc assemblyService, logger *slog.Logger) *AssemblyHandler {
	return &AssemblyHandler{svc: svc, log: logger.With("handler", "assembly")}
}

type addAssemblyRequest struct {
	AssemblyID       uuid.UUID `json:"assembly_id"`
	CulopsAssemblyID int64     `json:"culops_assembly_id"`
}

type addAssemblyResponse struct {
	Replayed bool `json:"replayed"`
}

type assemblyMappingPayload struct {
	AssemblyID       uuid.UUID `json:"assembly_id"`
	CulopsAssemblyID *int64    `json:"culops_assembly_id"`
	Deleted          bool      `json:"deleted"`
}

type mappingsResponse struct {
	Mappings []assemblyMappingPayload `json:"mappings"`
}

// Add handles POST /partners/{partnerID}/assemblies.
func (h *AssemblyHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addAssemblyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.AddAssembly(r.Context(), assembly.AddAssemblyInput{
		PartnerID:        partnerID(r),
		AssemblyID:       req.AssemblyID,
		CulopsAssemblyID: req.CulopsAssemblyID,
		IdempotencyKey:   r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, addAssemblyResponse{Replayed: result.Replayed})
}

// Mappings handles GET /partners/{partnerID}/assemblies/mappings?ids=a,b.
func (h *AssemblyHandler) Mappings(w http.ResponseWriter, r *http.Request) {
	var ids []uuid.UUID
	for _, raw := range strings.Split(r.URL.Query().Get("ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid ids")
			return
		}
		ids = append(ids, id)
	}

	mappings, err := h.svc.GetMappings(r.Context(), assembly.GetMappingsInput{
		PartnerID:   partnerID(r),
		AssemblyIDs: ids,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := mappingsResponse{Mappings: make([]assemblyMappingPayload, len(mappings))}
	for i, m := range mappings {
		resp.Mappings[i] = assemblyMappingPayload{AssemblyID: m.AssemblyID, CulopsAssemblyID: m.CulopsAssemblyID, Deleted: m.Deleted}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /partners/{partnerID}/assemblies/{assemblyID}.
func (h *AssemblyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "assemblyID")
	if !ok {
		return
	}

	err := h.svc.DeleteAssembly(r.Context(), assembly.DeleteAssemblyInput{
		PartnerID:  partnerID(r),
		AssemblyID: id,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
