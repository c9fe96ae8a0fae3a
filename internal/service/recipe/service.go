// Package recipe syncs partner recipes from culops.
package recipe

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

type recipeRepo interface {
	GetRecipeIDsByCulopsIDs(ctx context.Context, partnerID string, culopsIDs []int64) (map[int64]uuid.UUID, error)
	SaveRecipes(ctx context.Context, partnerID string, recipes []domain.ClassifiedRecipe) error
	ListRecipes(ctx context.Context, partnerID string, cycleDate *time.Time) ([]domain.ClassifiedRecipe, error)
}

type pantryLookup interface {
	GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID(ctx context.Context, specificationID, culinaryIngredientID int64) (*domain.RecipePantryItemData, error)
}

type partnerRepo interface {
	GetConfiguration(ctx context.Context, partnerID string) (*domain.PartnerConfiguration, error)
}

type recipeSource interface {
	ListRecipes(ctx context.Context, cycleDate time.Time) (*culops.Document, error)
}

type classifier interface {
	Supports(partnerID string) bool
	Classify(recipe domain.Recipe) (domain.PlanLabel, error)
}

// Service provides recipe sync operations.
type Service struct {
	recipes    recipeRepo
	pantry     pantryLookup
	partners   partnerRepo
	culops     recipeSource
	classifier classifier
	log        *slog.Logger
}

// NewService creates a new recipe service.
func NewService(
	log *slog.Logger,
	recipes recipeRepo,
	pantry pantryLookup,
	partners partnerRepo,
	source recipeSource,
	classifier classifier,
) *Service {
	return &Service{
		recipes:    recipes,
		pantry:     pantry,
		partners:   partners,
		culops:     source,
		classifier: classifier,
		log:        log.With("service", "recipe"),
	}
}
