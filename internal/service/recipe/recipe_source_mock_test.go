package recipe

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
)

var _ recipeSource = &recipeSourceMock{}

type recipeSourceMock struct {
	ListRecipesFunc func(ctx context.Context, cycleDate time.Time) (*culops.Document, error)

	calls struct {
		ListRecipes []struct {
			Ctx       context.Context
			CycleDate time.Time
		}
	}
	lockListRecipes sync.RWMutex
}

func (mock *recipeSourceMock) ListRecipes(ctx context.Context, cycleDate time.Time) (*culops.Document, error) {
	if mock.ListRecipesFunc == nil {
		panic("recipeSourceMock.ListRecipesFunc: method is nil but recipeSource.ListRecipes was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		CycleDate time.Time
	}{Ctx: ctx, CycleDate: cycleDate}
	mock.lockListRecipes.Lock()
	mock.calls.ListRecipes = append(mock.calls.ListRecipes, callInfo)
	mock.lockListRecipes.Unlock()
	return mock.ListRecipesFunc(ctx, cycleDate)
}

func (mock *recipeSourceMock) ListRecipesCalls() []struct {
	Ctx       context.Context
	CycleDate time.Time
} {
	mock.lockListRecipes.RLock()
	calls := mock.calls.ListRecipes
	mock.lockListRecipes.RUnlock()
	return calls
}
