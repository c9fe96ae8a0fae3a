package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
	"github.com/heartmarshall/culops-pantry/internal/service/pantry"
)

type pantryService interface {
	CreatePantry(ctx context.Context, input pantry.CreatePantryInput) (*pantry.CreatePantryResult, error)
	GetPantry(ctx context.Context, input pantry.GetPantryInput) (*pantry.PantryPage, error)
	DeletePantry(ctx context.Context, input pantry.DeletePantryInput) error
	SyncFromCulops(ctx context.Context, input pantry.SyncPantryInput) (*pantry.SyncResult, error)
	ComparePantries(ctx context.Context, input pantry.ComparePantriesInput) (domain.PantryDiff, error)
}

// PantryHandler serves pantry state endpoints.
type PantryHandler struct {
	svc pantryService
	log *slog.Logger
}

// NewPantryHandler creates a PantryHandler.
func NewPantryHandler(svc pantryService, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{svc: svc, log: logger.With("handler", "pantry")}
}

type dataSourcePayload struct {
	CulinaryIngredientSpecificationID int64 `json:"culinary_ingredient_specification_id"`
	CulinaryIngredientID              int64 `json:"culinary_ingredient_id"`
}

type costPayload struct {
	ProductionCostUSDollars float64    `json:"production_cost_us_dollars"`
	StartDate               *time.Time `json:"start_date,omitempty"`
	EndDate                 *time.Time `json:"end_date,omitempty"`
}

type availabilityPayload struct {
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`
}

type customFieldPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type pantryItemPayload struct {
	ID                   *uuid.UUID            `json:"id,omitempty"`
	Description          string                `json:"description"`
	Amount               float64               `json:"amount"`
	Units                string                `json:"units"`
	IsPreppedAndReady    bool                  `json:"is_prepped_and_ready"`
	BrandName            *string               `json:"brand_name,omitempty"`
	PantryItemDataSource *dataSourcePayload    `json:"pantry_item_data_source,omitempty"`
	Costs                []costPayload         `json:"costs"`
	Availability         []availabilityPayload `json:"availability"`
	CustomFields         []customFieldPayload  `json:"custom_fields"`
}

type createPantryRequest struct {
	Timestamp           time.Time           `json:"timestamp"`
	ItemsAvailableFrom  *time.Time          `json:"items_available_from,omitempty"`
	ItemsAvailableUntil *time.Time          `json:"items_available_until,omitempty"`
	Items               []pantryItemPayload `json:"items"`
}

type createPantryResponse struct {
	PantryStateID *uuid.UUID `json:"pantry_state_id,omitempty"`
	ItemCount     int        `json:"item_count"`
	Replayed      bool       `json:"replayed"`
}

type pantryStatePayload struct {
	ID                  uuid.UUID  `json:"id"`
	PartnerID           string     `json:"partner_id"`
	Timestamp           time.Time  `json:"timestamp"`
	ItemsAvailableFrom  *time.Time `json:"items_available_from,omitempty"`
	ItemsAvailableUntil *time.Time `json:"items_available_until,omitempty"`
}

type costMarkupPayload struct {
	AppliedFrom   *time.Time `json:"applied_from,omitempty"`
	AppliedUntil  *time.Time `json:"applied_until,omitempty"`
	MarkupPercent float64    `json:"markup_percent"`
}

type pantryPageResponse struct {
	State       pantryStatePayload  `json:"pantry_state"`
	Items       []pantryItemPayload `json:"items"`
	CostMarkups []costMarkupPayload `json:"cost_markups"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalCount  int                 `json:"total_count"`
	TotalPages  int                 `json:"total_pages"`
}

type itemChangePayload struct {
	Before pantryItemPayload `json:"before"`
	After  pantryItemPayload `json:"after"`
}

type pantryDiffResponse struct {
	Added   []pantryItemPayload `json:"added"`
	Changed []itemChangePayload `json:"changed"`
	Removed []pantryItemPayload `json:"removed"`
}

type syncPantryResponse struct {
	PantryStateID *uuid.UUID          `json:"pantry_state_id,omitempty"`
	Created       bool                `json:"created"`
	Replayed      bool                `json:"replayed"`
	Diff          *pantryDiffResponse `json:"diff,omitempty"`
}

// Create handles POST /partners/{partnerID}/pantries.
func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPantryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]domain.PantryItem, len(req.Items))
	for i, p := range req.Items {
		items[i] = fromItemPayload(p)
	}

	result, err := h.svc.CreatePantry(r.Context(), pantry.CreatePantryInput{
		PartnerID:           partnerID(r),
		Timestamp:           req.Timestamp,
		ItemsAvailableFrom:  req.ItemsAvailableFrom,
		ItemsAvailableUntil: req.ItemsAvailableUntil,
		Items:               items,
		IdempotencyKey:      r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := createPantryResponse{ItemCount: result.ItemCount, Replayed: result.Replayed}
	status := http.StatusOK
	if !result.Replayed {
		id := result.PantryStateID
		resp.PantryStateID = &id
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// Get handles GET /partners/{partnerID}/pantries/{pantryID}?page=&page_size=.
func (h *PantryHandler) Get(w http.ResponseWriter, r *http.Request) {
	stateID, ok := pathUUID(w, r, "pantryID")
	if !ok {
		return
	}
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	pageSize, ok := queryInt(w, r, "page_size")
	if !ok {
		return
	}

	result, err := h.svc.GetPantry(r.Context(), pantry.GetPantryInput{
		PartnerID:     partnerID(r),
		PantryStateID: stateID,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPantryPageResponse(result))
}

// Delete handles DELETE /partners/{partnerID}/pantries/{pantryID}.
func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	stateID, ok := pathUUID(w, r, "pantryID")
	if !ok {
		return
	}

	err := h.svc.DeletePantry(r.Context(), pantry.DeletePantryInput{
		PartnerID:     partnerID(r),
		PantryStateID: stateID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Sync handles POST /partners/{partnerID}/pantries/sync.
func (h *PantryHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SyncFromCulops(r.Context(), pantry.SyncPantryInput{
		PartnerID:      partnerID(r),
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := syncPantryResponse{Created: result.Created, Replayed: result.Replayed}
	if result.PantryStateID != uuid.Nil {
		id := result.PantryStateID
		resp.PantryStateID = &id
	}
	if !result.Replayed {
		diff := toDiffResponse(result.Diff)
		resp.Diff = &diff
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// Compare handles GET /partners/{partnerID}/pantry-diff?from=&to=.
func (h *PantryHandler) Compare(w http.ResponseWriter, r *http.Request) {
	from, ok := queryUUID(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryUUID(w, r, "to")
	if !ok {
		return
	}

	diff, err := h.svc.ComparePantries(r.Context(), pantry.ComparePantriesInput{
		PartnerID: partnerID(r),
		FromID:    from,
		ToID:      to,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDiffResponse(diff))
}

func fromItemPayload(p pantryItemPayload) domain.PantryItem {
	item := domain.PantryItem{
		Description:       p.Description,
		Amount:            p.Amount,
		Units:             p.Units,
		IsPreppedAndReady: p.IsPreppedAndReady,
		BrandName:         p.BrandName,
	}
	if p.ID != nil {
		item.ID = *p.ID
	}
	if p.PantryItemDataSource != nil {
		item.DataSource = &domain.PantryItemDataSource{
			CulinaryIngredientSpecificationID: p.PantryItemDataSource.CulinaryIngredientSpecificationID,
			CulinaryIngredientID:              p.PantryItemDataSource.CulinaryIngredientID,
		}
	}

	costs := make([]domain.PantryItemCost, len(p.Costs))
	for i, c := range p.Costs {
		costs[i] = domain.PantryItemCost{ProductionCostUSDollars: c.ProductionCostUSDollars, StartDate: c.StartDate, EndDate: c.EndDate}
	}
	availability := make([]domain.PantryItemAvailability, len(p.Availability))
	for i, a := range p.Availability {
		availability[i] = domain.PantryItemAvailability{AvailableFrom: a.AvailableFrom, AvailableUntil: a.AvailableUntil}
	}
	fields := make([]domain.PantryItemCustomField, len(p.CustomFields))
	for i, f := range p.CustomFields {
		fields[i] = domain.PantryItemCustomField{Key: f.Key, Value: f.Value}
	}
	return domain.NewPantryItem(item, costs, availability, fields)
}

func toItemPayload(item domain.PantryItem) pantryItemPayload {
	id := item.ID
	p := pantryItemPayload{
		ID:                &id,
		Description:       item.Description,
		Amount:            item.Amount,
		Units:             item.Units,
		IsPreppedAndReady: item.IsPreppedAndReady,
		BrandName:         item.BrandName,
		Costs:             make([]costPayload, len(item.Costs)),
		Availability:      make([]availabilityPayload, len(item.Availability)),
		CustomFields:      make([]customFieldPayload, len(item.CustomFields)),
	}
	if item.DataSource != nil {
		p.PantryItemDataSource = &dataSourcePayload{
			CulinaryIngredientSpecificationID: item.DataSource.CulinaryIngredientSpecificationID,
			CulinaryIngredientID:              item.DataSource.CulinaryIngredientID,
		}
	}
	for i, c := range item.Costs {
		p.Costs[i] = costPayload{ProductionCostUSDollars: c.ProductionCostUSDollars, StartDate: c.StartDate, EndDate: c.EndDate}
	}
	for i, a := range item.Availability {
		p.Availability[i] = availabilityPayload{AvailableFrom: a.AvailableFrom, AvailableUntil: a.AvailableUntil}
	}
	for i, f := range item.CustomFields {
		p.CustomFields[i] = customFieldPayload{Key: f.Key, Value: f.Value}
	}
	return p
}

func toPantryPageResponse(page *pantry.PantryPage) pantryPageResponse {
	state := page.Pantry.State
	resp := pantryPageResponse{
		State: pantryStatePayload{
			ID:                  state.ID,
			PartnerID:           state.PartnerID,
			Timestamp:           state.Timestamp,
			ItemsAvailableFrom:  state.ItemsAvailableFrom,
			ItemsAvailableUntil: state.ItemsAvailableUntil,
		},
		Items:       make([]pantryItemPayload, len(page.Pantry.Items)),
		CostMarkups: make([]costMarkupPayload, len(page.Pantry.CostMarkups)),
		Page:        page.Page,
		PageSize:    page.PageSize,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
	}
	for i, item := range page.Pantry.Items {
		resp.Items[i] = toItemPayload(item)
	}
	for i, m := range page.Pantry.CostMarkups {
		resp.CostMarkups[i] = costMarkupPayload{AppliedFrom: m.AppliedFrom, AppliedUntil: m.AppliedUntil, MarkupPercent: m.MarkupPercent}
	}
	return resp
}

func toDiffResponse(diff domain.PantryDiff) pantryDiffResponse {
	resp := pantryDiffResponse{
		Added:   make([]pantryItemPayload, len(diff.Added)),
		Changed: make([]itemChangePayload, len(diff.Changed)),
		Removed: make([]pantryItemPayload, len(diff.Removed)),
	}
	for i, item := range diff.Added {
		resp.Added[i] = toItemPayload(item)
	}
	for i, c := range diff.Changed {
		resp.Changed[i] = itemChangePayload{Before: toItemPayload(c.Before), After: toItemPayload(c.After)}
	}
	for i, item := range diff.Removed {
		resp.Removed[i] = toItemPayload(item)
	}
	return resp
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.URL.Query().Get(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}
