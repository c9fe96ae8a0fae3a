package recipe

import (
	"context"
	"sync"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

var _ pantryLookup = &pantryLookupMock{}

type pantryLookupMock struct {
	GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationIDFunc func(ctx context.Context, specificationID int64, culinaryIngredientID int64) (*domain.RecipePantryItemData, error)

	calls struct {
		GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID []struct {
			Ctx                  context.Context
			SpecificationID      int64
			CulinaryIngredientID int64
		}
	}
	lockGetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID sync.RWMutex
}

func (mock *pantryLookupMock) GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID(ctx context.Context, specificationID int64, culinaryIngredientID int64) (*domain.RecipePantryItemData, error) {
	if mock.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationIDFunc == nil {
		panic("pantryLookupMock.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationIDFunc: method is nil but pantryLookup.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID was just called")
	}
	callInfo := struct {
		Ctx                  context.Context
		SpecificationID      int64
		CulinaryIngredientID int64
	}{Ctx: ctx, SpecificationID: specificationID, CulinaryIngredientID: culinaryIngredientID}
	mock.lockGetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID.Lock()
	mock.calls.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID = append(mock.calls.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID, callInfo)
	mock.lockGetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID.Unlock()
	return mock.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationIDFunc(ctx, specificationID, culinaryIngredientID)
}

func (mock *pantryLookupMock) GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationIDCalls() []struct {
	Ctx                  context.Context
	SpecificationID      int64
	CulinaryIngredientID int64
} {
	mock.lockGetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID.RLock()
	calls := mock.calls.GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID
	mock.lockGetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID.RUnlock()
	return calls
}
