package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the partner-side view of a recipe.
type Recipe struct {
	RecipeID                   uuid.UUID
	PartnerID                  string
	Title                      string
	Subtitle                   string
	AddOn                      bool
	CycleDate                  *time.Time
	Servings                   int
	PantryItems                []RecipePantryItemData
	RecipeConstraintTags       []string
	PackagingConfigurationTags []string
	RecipeCardAssignments      []string
	DeletedAt                  *time.Time
}

// PreppedAndReadyCount returns how many pantry items are prepped and ready.
func (r Recipe) PreppedAndReadyCount() int {
	n := 0
	for _, item := range r.PantryItems {
		if item.IsPreppedAndReady {
			n++
		}
	}
	return n
}

// CulopsRecipePantryItemData is a recipe pantry item resolved from a culops
// ingredient. Specification and culinary ingredient ids are nil when the
// payload did not resolve them.
type CulopsRecipePantryItemData struct {
	RecipePantryItemData
	IngredientID                      int64
	CulinaryIngredientSpecificationID *int64
	CulinaryIngredientID              *int64
}

// DataSource returns the pantry data source pair, or false if either id is unresolved.
func (d CulopsRecipePantryItemData) DataSource() (PantryItemDataSource, bool) {
	if d.CulinaryIngredientSpecificationID == nil || d.CulinaryIngredientID == nil {
		return PantryItemDataSource{}, false
	}
	return PantryItemDataSource{
		CulinaryIngredientSpecificationID: *d.CulinaryIngredientSpecificationID,
		CulinaryIngredientID:              *d.CulinaryIngredientID,
	}, true
}

// CulopsRecipe is a recipe normalized from a culops payload.
// CulopsPantryItems parallels Recipe.PantryItems.
type CulopsRecipe struct {
	Recipe
	CulopsRecipeID      int64
	RecipeSlotPlan      string
	RecipeSlotShortCode string
	CulopsPantryItems   []CulopsRecipePantryItemData
}

// WithPantryItems returns a copy of r whose CulopsPantryItems and
// Recipe.PantryItems are both set from items.
func (r CulopsRecipe) WithPantryItems(items []CulopsRecipePantryItemData) CulopsRecipe {
	r.CulopsPantryItems = append([]CulopsRecipePantryItemData(nil), items...)
	r.PantryItems = make([]RecipePantryItemData, len(items))
	for i, item := range items {
		r.PantryItems[i] = item.RecipePantryItemData
	}
	return r
}

// PlanLabel names the partner plan a recipe belongs to.
type PlanLabel string

const (
	PlanStandard        PlanLabel = "standard"
	PlanPreppedAndReady PlanLabel = "prepped_and_ready"
	PlanAddOn           PlanLabel = "add_on"
	PlanFamily          PlanLabel = "family"
	PlanTwoServing      PlanLabel = "two_serving"
)

// ClassifiedRecipe is a culops recipe with its partner plan.
type ClassifiedRecipe struct {
	CulopsRecipe
	Plan PlanLabel
}

// PartnerConfiguration holds the per-partner catalogue settings.
type PartnerConfiguration struct {
	PartnerID                  string
	Name                       string
	RecipePlans                []string
	PackagingConfigurationTags []string
	RecipeConstraintTags       []string
	Brands                     []string
	SalesChannels              []string
}

// AllowsPlan reports whether plan is configured for the partner. A partner
// without configured plans accepts every plan.
func (c PartnerConfiguration) AllowsPlan(plan PlanLabel) bool {
	if len(c.RecipePlans) == 0 {
		return true
	}
	for _, p := range c.RecipePlans {
		if p == string(plan) {
			return true
		}
	}
	return false
}
