package recipe

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

var _ recipeRepo = &recipeRepoMock{}

type recipeRepoMock struct {
	GetRecipeIDsByCulopsIDsFunc func(ctx context.Context, partnerID string, culopsIDs []int64) (map[int64]uuid.UUID, error)
	ListRecipesFunc             func(ctx context.Context, partnerID string, cycleDate *time.Time) ([]domain.ClassifiedRecipe, error)
	SaveRecipesFunc             func(ctx context.Context, partnerID string, recipes []domain.ClassifiedRecipe) error

	calls struct {
		GetRecipeIDsByCulopsIDs []struct {
			Ctx       context.Context
			PartnerID string
			CulopsIDs []int64
		}
		ListRecipes []struct {
			Ctx       context.Context
			PartnerID string
			CycleDate *time.Time
		}
		SaveRecipes []struct {
			Ctx       context.Context
			PartnerID string
			Recipes   []domain.ClassifiedRecipe
		}
	}
	lockGetRecipeIDsByCulopsIDs sync.RWMutex
	lockListRecipes             sync.RWMutex
	lockSaveRecipes             sync.RWMutex
}

func (mock *recipeRepoMock) GetRecipeIDsByCulopsIDs(ctx context.Context, partnerID string, culopsIDs []int64) (map[int64]uuid.UUID, error) {
	if mock.GetRecipeIDsByCulopsIDsFunc == nil {
		panic("recipeRepoMock.GetRecipeIDsByCulopsIDsFunc: method is nil but recipeRepo.GetRecipeIDsByCulopsIDs was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		PartnerID string
		CulopsIDs []int64
	}{Ctx: ctx, PartnerID: partnerID, CulopsIDs: culopsIDs}
	mock.lockGetRecipeIDsByCulopsIDs.Lock()
	mock.calls.GetRecipeIDsByCulopsIDs = append(mock.calls.GetRecipeIDsByCulopsIDs, callInfo)
	mock.lockGetRecipeIDsByCulopsIDs.Unlock()
	return mock.GetRecipeIDsByCulopsIDsFunc(ctx, partnerID, culopsIDs)
}

func (mock *recipeRepoMock) GetRecipeIDsByCulopsIDsCalls() []struct {
	Ctx       context.Context
	PartnerID string
	CulopsIDs []int64
} {
	mock.lockGetRecipeIDsByCulopsIDs.RLock()
	calls := mock.calls.GetRecipeIDsByCulopsIDs
	mock.lockGetRecipeIDsByCulopsIDs.RUnlock()
	return calls
}

func (mock *recipeRepoMock) ListRecipes(ctx context.Context, partnerID string, cycleDate *time.Time) ([]domain.ClassifiedRecipe, error) {
	if mock.ListRecipesFunc == nil {
		panic("recipeRepoMock.ListRecipesFunc: method is nil but recipeRepo.ListRecipes was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		PartnerID string
		CycleDate *time.Time
	}{Ctx: ctx, PartnerID: partnerID, CycleDate: cycleDate}
	mock.lockListRecipes.Lock()
	mock.calls.ListRecipes = append(mock.calls.ListRecipes, callInfo)
	mock.lockListRecipes.Unlock()
	return mock.ListRecipesFunc(ctx, partnerID, cycleDate)
}

func (mock *recipeRepoMock) ListRecipesCalls() []struct {
	Ctx       context.Context
	PartnerID string
	CycleDate *time.Time
} {
	mock.lockListRecipes.RLock()
	calls := mock.calls.ListRecipes
	mock.lockListRecipes.RUnlock()
	return calls
}

func (mock *recipeRepoMock) SaveRecipes(ctx context.Context, partnerID string, recipes []domain.ClassifiedRecipe) error {
	if mock.SaveRecipesFunc == nil {
		panic("recipeRepoMock.SaveRecipesFunc: method is nil but recipeRepo.SaveRecipes was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		PartnerID string
		Recipes   []domain.ClassifiedRecipe
	}{Ctx: ctx, PartnerID: partnerID, Recipes: recipes}
	mock.lockSaveRecipes.Lock()
	mock.calls.SaveRecipes = append(mock.calls.SaveRecipes, callInfo)
	mock.lockSaveRecipes.Unlock()
	return mock.SaveRecipesFunc(ctx, partnerID, recipes)
}

func (mock *recipeRepoMock) SaveRecipesCalls() []struct {
	Ctx       context.Context
	PartnerID string
	Recipes   []domain.ClassifiedRecipe
} {
	mock.lockSaveRecipes.RLock()
	calls := mock.calls.SaveRecipes
	mock.lockSaveRecipes.RUnlock()
	return calls
}
