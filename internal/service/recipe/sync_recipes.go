package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// SyncRecipesResult lists the saved recipes of a cycle.
type SyncRecipesResult struct {
	Recipes    []domain.ClassifiedRecipe
	Created    int
	Updated    int
	Unresolved int
}

// SyncRecipes fetches a recipe cycle from culops, links ingredients to pantry
// items, classifies each recipe into a partner plan and saves the cycle.
// The whole cycle is rejected when any recipe cannot be classified or lands
// in a plan the partner does not offer.
func (s *Service) SyncRecipes(ctx context.Context, input SyncRecipesInput) (*SyncRecipesResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if !s.classifier.Supports(input.PartnerID) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedPartner, input.PartnerID)
	}

	partner, err := s.partners.GetConfiguration(ctx, input.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("get partner configuration: %w", err)
	}

	doc, err := s.culops.ListRecipes(ctx, input.CycleDate)
	if err != nil {
		return nil, fmt.Errorf("fetch recipes: %w", err)
	}
	normalized, err := culops.NormalizeRecipes(input.PartnerID, doc)
	if err != nil {
		return nil, fmt.Errorf("normalize recipes: %w", err)
	}

	result := &SyncRecipesResult{}
	if len(normalized) == 0 {
		return result, nil
	}

	cache := make(map[domain.PantryItemDataSource]*domain.RecipePantryItemData)
	for i := range normalized {
		linked, unresolved, err := s.linkPantryItems(ctx, normalized[i].CulopsPantryItems, cache)
		if err != nil {
			return nil, fmt.Errorf("link pantry items of culops recipe %d: %w", normalized[i].CulopsRecipeID, err)
		}
		normalized[i] = normalized[i].WithPantryItems(linked)
		result.Unresolved += unresolved
	}

	culopsIDs := make([]int64, len(normalized))
	for i, r := range normalized {
		culopsIDs[i] = r.CulopsRecipeID
	}
	existing, err := s.recipes.GetRecipeIDsByCulopsIDs(ctx, input.PartnerID, culopsIDs)
	if err != nil {
		return nil, fmt.Errorf("get recipe ids: %w", err)
	}

	classified := make([]domain.ClassifiedRecipe, 0, len(normalized))
	seen := make(map[int64]struct{}, len(normalized))
	for _, r := range normalized {
		if _, dup := seen[r.CulopsRecipeID]; dup {
			continue
		}
		seen[r.CulopsRecipeID] = struct{}{}

		if id, ok := existing[r.CulopsRecipeID]; ok {
			r.RecipeID = id
			result.Updated++
		} else {
			r.RecipeID = uuid.New()
			result.Created++
		}
		r.RecipeConstraintTags = keepConfigured(r.RecipeConstraintTags, partner.RecipeConstraintTags)
		r.PackagingConfigurationTags = keepConfigured(r.PackagingConfigurationTags, partner.PackagingConfigurationTags)

		plan, err := s.classifier.Classify(r.Recipe)
		if err != nil {
			return nil, fmt.Errorf("classify culops recipe %d: %w", r.CulopsRecipeID, err)
		}
		if !partner.AllowsPlan(plan) {
			return nil, fmt.Errorf("culops recipe %d: %w: %s", r.CulopsRecipeID, domain.ErrPlanNotConfigured, plan)
		}
		classified = append(classified, domain.ClassifiedRecipe{CulopsRecipe: r, Plan: plan})
	}

	if err := s.recipes.SaveRecipes(ctx, input.PartnerID, classified); err != nil {
		return nil, fmt.Errorf("save recipes: %w", err)
	}
	result.Recipes = classified

	s.log.InfoContext(ctx, "recipes synced",
		slog.String("partner_id", input.PartnerID),
		slog.String("cycle_date", input.CycleDate.Format("2006-01-02")),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("unresolved_items", result.Unresolved),
	)
	return result, nil
}

// linkPantryItems fills the pantry item of every ingredient whose data
// source matches a stored item. Unmatched ingredients keep a zero id and are counted.
func (s *Service) linkPantryItems(
	ctx context.Context,
	items []domain.CulopsRecipePantryItemData,
	cache map[domain.PantryItemDataSource]*domain.RecipePantryItemData,
) ([]domain.CulopsRecipePantryItemData, int, error) {
	out := make([]domain.CulopsRecipePantryItemData, len(items))
	unresolved := 0
	for i, item := range items {
		out[i] = item
		ds, ok := item.DataSource()
		if !ok {
			unresolved++
			continue
		}
		stored, seen := cache[ds]
		if !seen {
			var err error
			stored, err = s.pantry.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID(ctx,
				ds.CulinaryIngredientSpecificationID, ds.CulinaryIngredientID)
			if err != nil {
				return nil, 0, err
			}
			cache[ds] = stored
		}
		if stored == nil {
			unresolved++
			continue
		}
		out[i].RecipePantryItemData = *stored
	}
	return out, unresolved, nil
}

// keepConfigured drops tags the partner has not configured. A partner
// without configured tags keeps every tag.
func keepConfigured(tags, configured []string) []string {
	if len(configured) == 0 {
		return tags
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if slices.Contains(configured, t) {
			out = append(out, t)
		}
	}
	return out
}

// ListRecipes returns a partner's stored recipes.
func (s *Service) ListRecipes(ctx context.Context, input ListRecipesInput) ([]domain.ClassifiedRecipe, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	recipes, err := s.recipes.ListRecipes(ctx, input.PartnerID, input.CycleDate)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}
