package culops

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// ErrMalformedPayload is returned when a payload misses a required member
// or carries a value of the wrong shape.
var ErrMalformedPayload = errors.New("malformed culops payload")

type recipeAttributes struct {
	Title                      string   `json:"title"`
	SubTitle                   string   `json:"sub-title"`
	CycleDate                  *string  `json:"cycle-date"`
	Servings                   int      `json:"servings"`
	AddOn                      bool     `json:"add-on"`
	RecipeSlotPlan             string   `json:"recipe-slot-plan"`
	RecipeSlotShortCode        string   `json:"recipe-slot-short-code"`
	RecipeConstraintTags       []string `json:"recipe-constraint-tags"`
	PackagingConfigurationTags []string `json:"packaging-configuration-tags"`
	RecipeCardAssignments      []string `json:"recipe-card-assignments"`
	DeletedAt                  *string  `json:"deleted-at"`
}

type specificationAttributes struct {
	Description       string                     `json:"description"`
	Amount            float64                    `json:"amount"`
	Units             string                     `json:"units"`
	BrandName         *string                    `json:"brand-name"`
	PreppedAndReady   bool                       `json:"prepped-and-ready"`
	Cost              *float64                   `json:"cost"`
	CostEffectiveFrom *string                    `json:"cost-effective-from"`
	CostEffectiveTo   *string                    `json:"cost-effective-until"`
	AvailableFrom     *string                    `json:"available-from"`
	AvailableUntil    *string                    `json:"available-until"`
	CustomFields      map[string]json.RawMessage `json:"custom-fields"`
}

// NormalizeRecipes builds one CulopsRecipe per data entry of doc, joining
// each recipe's ingredients and their specifications through doc.Included.
//
// Missing or null relationship data and references absent from Included
// leave the corresponding id nil. Only a document without data, a recipe
// without attributes or a malformed value is an error. RecipeID and the
// pantry item ids are left zero for the caller to resolve.
func NormalizeRecipes(partnerID string, doc *Document) ([]domain.CulopsRecipe, error) {
	if doc == nil || doc.Data == nil {
		return nil, fmt.Errorf("%w: document has no data", ErrMalformedPayload)
	}
	idx := newIndex(doc.Included)

	recipes := make([]domain.CulopsRecipe, 0, len(doc.Data))
	for i := range doc.Data {
		r, err := normalizeRecipe(partnerID, &doc.Data[i], idx)
		if err != nil {
			return nil, fmt.Errorf("recipe %q: %w", doc.Data[i].ID, err)
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

func normalizeRecipe(partnerID string, res *Resource, idx index) (domain.CulopsRecipe, error) {
	if len(res.Attributes) == 0 || string(res.Attributes) == "null" {
		return domain.CulopsRecipe{}, fmt.Errorf("%w: attributes missing", ErrMalformedPayload)
	}
	culopsID, err := parseID(res.ID)
	if err != nil {
		return domain.CulopsRecipe{}, err
	}
	var attrs recipeAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return domain.CulopsRecipe{}, fmt.Errorf("%w: attributes: %v", ErrMalformedPayload, err)
	}
	cycleDate, err := parseAPIDate(attrs.CycleDate)
	if err != nil {
		return domain.CulopsRecipe{}, fmt.Errorf("cycle-date: %w", err)
	}
	deletedAt, err := parseAPITime(attrs.DeletedAt)
	if err != nil {
		return domain.CulopsRecipe{}, fmt.Errorf("deleted-at: %w", err)
	}

	refs, err := res.Relationships[relIngredients].Many()
	if err != nil {
		return domain.CulopsRecipe{}, fmt.Errorf("%w: ingredients: %v", ErrMalformedPayload, err)
	}
	items := make([]domain.CulopsRecipePantryItemData, 0, len(refs))
	for _, ref := range refs {
		item, err := resolveIngredient(ref, idx)
		if err != nil {
			return domain.CulopsRecipe{}, fmt.Errorf("ingredient %q: %w", ref.ID, err)
		}
		items = append(items, item)
	}

	r := domain.CulopsRecipe{
		Recipe: domain.Recipe{
			PartnerID:                  partnerID,
			Title:                      attrs.Title,
			Subtitle:                   attrs.SubTitle,
			AddOn:                      attrs.AddOn,
			CycleDate:                  cycleDate,
			Servings:                   attrs.Servings,
			RecipeConstraintTags:       attrs.RecipeConstraintTags,
			PackagingConfigurationTags: attrs.PackagingConfigurationTags,
			RecipeCardAssignments:      attrs.RecipeCardAssignments,
			DeletedAt:                  deletedAt,
		},
		CulopsRecipeID:      culopsID,
		RecipeSlotPlan:      attrs.RecipeSlotPlan,
		RecipeSlotShortCode: attrs.RecipeSlotShortCode,
	}
	return r.WithPantryItems(items), nil
}

// resolveIngredient follows ingredient -> specification -> culinary
// ingredient. Each hop that cannot be followed leaves its id nil.
func resolveIngredient(ref Identifier, idx index) (domain.CulopsRecipePantryItemData, error) {
	var item domain.CulopsRecipePantryItemData

	id, err := parseID(ref.ID)
	if err != nil {
		return item, err
	}
	item.IngredientID = id

	ingredient, ok := idx.lookup(ref)
	if !ok {
		return item, nil
	}
	specRef, ok, err := ingredient.Relationships[relCulinaryIngredientSpecification].One()
	if err != nil {
		return item, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, relCulinaryIngredientSpecification, err)
	}
	if !ok {
		return item, nil
	}
	specID, err := parseID(specRef.ID)
	if err != nil {
		return item, err
	}
	item.CulinaryIngredientSpecificationID = &specID

	spec, ok := idx.lookup(specRef)
	if !ok {
		return item, nil
	}
	if len(spec.Attributes) > 0 {
		var attrs struct {
			PreppedAndReady bool `json:"prepped-and-ready"`
		}
		if err := json.Unmarshal(spec.Attributes, &attrs); err != nil {
			return item, fmt.Errorf("%w: specification %q attributes: %v", ErrMalformedPayload, spec.ID, err)
		}
		item.IsPreppedAndReady = attrs.PreppedAndReady
	}
	ciID, ok, err := culinaryIngredientID(spec)
	if err != nil {
		return item, err
	}
	if ok {
		item.CulinaryIngredientID = &ciID
	}
	return item, nil
}

func culinaryIngredientID(spec *Resource) (int64, bool, error) {
	ref, ok, err := spec.Relationships[relCulinaryIngredient].One()
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, relCulinaryIngredient, err)
	}
	if !ok {
		return 0, false, nil
	}
	id, err := parseID(ref.ID)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// NormalizePantryItems builds one PantryItem per culinary ingredient
// specification in doc.Data. Specifications not linked to a culinary
// ingredient are skipped. Item ids are left zero.
func NormalizePantryItems(doc *Document) ([]domain.PantryItem, error) {
	if doc == nil || doc.Data == nil {
		return nil, fmt.Errorf("%w: document has no data", ErrMalformedPayload)
	}

	items := make([]domain.PantryItem, 0, len(doc.Data))
	for i := range doc.Data {
		res := &doc.Data[i]
		if res.Type != TypeCulinaryIngredientSpecification {
			continue
		}
		item, ok, err := normalizeSpecification(res)
		if err != nil {
			return nil, fmt.Errorf("specification %q: %w", res.ID, err)
		}
		if ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func normalizeSpecification(res *Resource) (domain.PantryItem, bool, error) {
	if len(res.Attributes) == 0 || string(res.Attributes) == "null" {
		return domain.PantryItem{}, false, fmt.Errorf("%w: attributes missing", ErrMalformedPayload)
	}
	specID, err := parseID(res.ID)
	if err != nil {
		return domain.PantryItem{}, false, err
	}
	ciID, ok, err := culinaryIngredientID(res)
	if err != nil || !ok {
		return domain.PantryItem{}, false, err
	}

	var attrs specificationAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return domain.PantryItem{}, false, fmt.Errorf("%w: attributes: %v", ErrMalformedPayload, err)
	}

	var costs []domain.PantryItemCost
	if attrs.Cost != nil {
		from, err := parseAPIDate(attrs.CostEffectiveFrom)
		if err != nil {
			return domain.PantryItem{}, false, fmt.Errorf("cost-effective-from: %w", err)
		}
		until, err := parseAPIDate(attrs.CostEffectiveTo)
		if err != nil {
			return domain.PantryItem{}, false, fmt.Errorf("cost-effective-until: %w", err)
		}
		costs = append(costs, domain.PantryItemCost{ProductionCostUSDollars: *attrs.Cost, StartDate: from, EndDate: until})
	}

	var availability []domain.PantryItemAvailability
	from, err := parseAPIDate(attrs.AvailableFrom)
	if err != nil {
		return domain.PantryItem{}, false, fmt.Errorf("available-from: %w", err)
	}
	until, err := parseAPIDate(attrs.AvailableUntil)
	if err != nil {
		return domain.PantryItem{}, false, fmt.Errorf("available-until: %w", err)
	}
	if from != nil || until != nil {
		availability = append(availability, domain.PantryItemAvailability{AvailableFrom: from, AvailableUntil: until})
	}

	keys := make([]string, 0, len(attrs.CustomFields))
	for k := range attrs.CustomFields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fields := make([]domain.PantryItemCustomField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, domain.PantryItemCustomField{Key: k, Value: customFieldValue(attrs.CustomFields[k])})
	}

	item := domain.PantryItem{
		Description:       attrs.Description,
		Amount:            attrs.Amount,
		Units:             attrs.Units,
		IsPreppedAndReady: attrs.PreppedAndReady,
		BrandName:         attrs.BrandName,
		DataSource: &domain.PantryItemDataSource{
			CulinaryIngredientSpecificationID: specID,
			CulinaryIngredientID:              ciID,
		},
	}
	return domain.NewPantryItem(item, costs, availability, fields), true, nil
}

// customFieldValue returns strings unquoted and any other JSON value verbatim.
func customFieldValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric id %q", ErrMalformedPayload, id)
	}
	return n, nil
}

// parseAPIDate accepts a calendar date or an RFC 3339 timestamp and returns
// the UTC calendar date. Null and "" are unbounded.
func parseAPIDate(s *string) (*time.Time, error) {
	t, err := parseAPITime(s)
	if err != nil || t == nil {
		return nil, err
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

func parseAPITime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrMalformedPayload, *s)
	}
	t = t.UTC()
	return &t, nil
}
