// Package plan assigns partner plan labels to recipes.
package plan

import (
	"fmt"
	"sort"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// Strategy classifies a recipe into one of a partner's plans.
type Strategy interface {
	PlanName(recipe domain.Recipe) (domain.PlanLabel, error)
}

// Strategy names accepted in configuration.
const (
	StrategyMealKit    = "meal_kit"
	StrategyFamilyTier = "family_tier"
)

// MealKit labels single prepped-and-ready items, add-ons, and standard
// recipes. A recipe mixing prepped-and-ready items with other items is an
// invalid configuration.
type MealKit struct{}

func (MealKit) PlanName(recipe domain.Recipe) (domain.PlanLabel, error) {
	if prepped := recipe.PreppedAndReadyCount(); prepped > 0 {
		if len(recipe.PantryItems) != 1 {
			return "", fmt.Errorf("%w: recipe %s has %d prepped and ready items among %d pantry items",
				domain.ErrInvalidPlanConfiguration, recipe.RecipeID, prepped, len(recipe.PantryItems))
		}
		return domain.PlanPreppedAndReady, nil
	}
	if recipe.AddOn {
		return domain.PlanAddOn, nil
	}
	return domain.PlanStandard, nil
}

// FamilyServings is the smallest serving count of a family recipe.
const FamilyServings = 4

// FamilyTier labels add-ons, then splits the rest by serving count.
type FamilyTier struct{}

func (FamilyTier) PlanName(recipe domain.Recipe) (domain.PlanLabel, error) {
	if recipe.AddOn {
		return domain.PlanAddOn, nil
	}
	if recipe.Servings >= FamilyServings {
		return domain.PlanFamily, nil
	}
	return domain.PlanTwoServing, nil
}

// Registry maps partner ids to strategies. It is built once and read-only afterwards.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds a Registry from partner -> strategy name pairs.
func NewRegistry(byPartner map[string]string) (*Registry, error) {
	r := &Registry{strategies: make(map[string]Strategy, len(byPartner))}
	for partner, name := range byPartner {
		s, err := strategyByName(name)
		if err != nil {
			return nil, fmt.Errorf("partner %s: %w", partner, err)
		}
		r.strategies[partner] = s
	}
	return r, nil
}

func strategyByName(name string) (Strategy, error) {
	switch name {
	case StrategyMealKit:
		return MealKit{}, nil
	case StrategyFamilyTier:
		return FamilyTier{}, nil
	default:
		return nil, fmt.Errorf("unknown plan strategy %q", name)
	}
}

// Classify returns the plan label of recipe using its partner's strategy.
func (r *Registry) Classify(recipe domain.Recipe) (domain.PlanLabel, error) {
	s, ok := r.strategies[recipe.PartnerID]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedPartner, recipe.PartnerID)
	}
	return s.PlanName(recipe)
}

// Supports reports whether partnerID has a strategy.
func (r *Registry) Supports(partnerID string) bool {
	_, ok := r.strategies[partnerID]
	return ok
}

// Partners returns the configured partner ids in sorted order.
func (r *Registry) Partners() []string {
	out := make([]string, 0, len(r.strategies))
	for p := range r.strategies {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
