package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
	"github.com/heartmarshall/culops-pantry/internal/service/recipe"
)

type recipeService interface {
	SyncRecipes(ctx context.Context, input recipe.SyncRecipesInput) (*recipe.SyncRecipesResult, error)
	ListRecipes(ctx context.Context, input recipe.ListRecipesInput) ([]domain.ClassifiedRecipe, error)
}

// RecipeHandler serves recipe endpoints.
type RecipeHandler struct {
	svc recipeService
	log *slog.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(svc recipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: logger.With("handler", "recipe")}
}

type syncRecipesRequest struct {
	CycleDate string `json:"cycle_date"`
}

type recipePantryItemPayload struct {
	PantryItemID      uuid.UUID `json:"pantry_item_id"`
	IsPreppedAndReady bool      `json:"is_prepped_and_ready"`
}

type recipePayload struct {
	RecipeID                   uuid.UUID                 `json:"recipe_id"`
	CulopsRecipeID             int64                     `json:"culops_recipe_id"`
	Title                      string                    `json:"title"`
	Subtitle                   string                    `json:"subtitle"`
	Plan                       string                    `json:"plan"`
	AddOn                      bool                      `json:"add_on"`
	Servings                   int                       `json:"servings"`
	CycleDate                  *string                   `json:"cycle_date,omitempty"`
	RecipeSlotPlan             string                    `json:"recipe_slot_plan,omitempty"`
	RecipeSlotShortCode        string                    `json:"recipe_slot_short_code,omitempty"`
	PantryItems                []recipePantryItemPayload `json:"pantry_items"`
	RecipeConstraintTags       []string                  `json:"recipe_constraint_tags"`
	PackagingConfigurationTags []string                  `json:"packaging_configuration_tags"`
	RecipeCardAssignments      []string                  `json:"recipe_card_assignments"`
	DeletedAt                  *time.Time                `json:"deleted_at,omitempty"`
}

type syncRecipesResponse struct {
	Recipes    []recipePayload `json:"recipes"`
	Created    int             `json:"created"`
	Updated    int             `json:"updated"`
	Unresolved int             `json:"unresolved"`
}

type listRecipesResponse struct {
	Recipes []recipePayload `json:"recipes"`
}

// Sync handles POST /partners/{partnerID}/recipes/sync.
func (h *RecipeHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncRecipesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cycle, err := time.Parse(time.DateOnly, req.CycleDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cycle_date")
		return
	}

	result, err := h.svc.SyncRecipes(r.Context(), recipe.SyncRecipesInput{
		PartnerID: partnerID(r),
		CycleDate: cycle,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, syncRecipesResponse{
		Recipes:    toRecipePayloads(result.Recipes),
		Created:    result.Created,
		Updated:    result.Updated,
		Unresolved: result.Unresolved,
	})
}

// List handles GET /partners/{partnerID}/recipes?cycle_date=.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	var cycle *time.Time
	if raw := r.URL.Query().Get("cycle_date"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid cycle_date")
			return
		}
		cycle = &t
	}

	recipes, err := h.svc.ListRecipes(r.Context(), recipe.ListRecipesInput{
		PartnerID: partnerID(r),
		CycleDate: cycle,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listRecipesResponse{Recipes: toRecipePayloads(recipes)})
}

func toRecipePayloads(recipes []domain.ClassifiedRecipe) []recipePayload {
	out := make([]recipePayload, len(recipes))
	for i, rc := range recipes {
		p := recipePayload{
			RecipeID:                   rc.RecipeID,
			CulopsRecipeID:             rc.CulopsRecipeID,
			Title:                      rc.Title,
			Subtitle:                   rc.Subtitle,
			Plan:                       string(rc.Plan),
			AddOn:                      rc.AddOn,
			Servings:                   rc.Servings,
			RecipeSlotPlan:             rc.RecipeSlotPlan,
			RecipeSlotShortCode:        rc.RecipeSlotShortCode,
			PantryItems:                make([]recipePantryItemPayload, len(rc.PantryItems)),
			RecipeConstraintTags:       nonNil(rc.RecipeConstraintTags),
			PackagingConfigurationTags: nonNil(rc.PackagingConfigurationTags),
			RecipeCardAssignments:      nonNil(rc.RecipeCardAssignments),
			DeletedAt:                  rc.DeletedAt,
		}
		if rc.CycleDate != nil {
			d := rc.CycleDate.Format(time.DateOnly)
			p.CycleDate = &d
		}
		for j, item := range rc.PantryItems {
			p.PantryItems[j] = recipePantryItemPayload{PantryItemID: item.PantryItemID, IsPreppedAndReady: item.IsPreppedAndReady}
		}
		out[i] = p
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
