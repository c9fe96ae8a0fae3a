package pantry

import (
	"context"
	"sync"

	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
)

var _ specificationSource = &specificationSourceMock{}

type specificationSourceMock struct {
	ListCulinaryIngredientSpecificationsFunc func(ctx context.Context) (*culops.Document, error)

	calls struct {
		ListCulinaryIngredientSpecifications []struct {
			Ctx context.Context
		}
	}
	lockListCulinaryIngredientSpecifications sync.RWMutex
}

func (mock *specificationSourceMock) ListCulinaryIngredientSpecifications(ctx context.Context) (*culops.Document, error) {
	if mock.ListCulinaryIngredientSpecificationsFunc == nil {
		panic("specificationSourceMock.ListCulinaryIngredientSpecificationsFunc: method is nil but specificationSource.ListCulinaryIngredientSpecifications was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListCulinaryIngredientSpecifications.Lock()
	mock.calls.ListCulinaryIngredientSpecifications = append(mock.calls.ListCulinaryIngredientSpecifications, callInfo)
	mock.lockListCulinaryIngredientSpecifications.Unlock()
	return mock.ListCulinaryIngredientSpecificationsFunc(ctx)
}

func (mock *specificationSourceMock) ListCulinaryIngredientSpecificationsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListCulinaryIngredientSpecifications.RLock()
	calls := mock.calls.ListCulinaryIngredientSpecifications
	mock.lockListCulinaryIngredientSpecifications.RUnlock()
	return calls
}
