package pantry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

var _ pantryRepo = &pantryRepoMock{}

type pantryRepoMock struct {
	DeletePantryFunc         func(ctx context.Context, pantryStateID uuid.UUID) error
	GetPartnerPantryByIDFunc func(ctx context.Context, pantryStateID uuid.UUID, partnerID string, pageSize int, page int) (*domain.Pantry, int, error)
	LatestPantryStateIDFunc  func(ctx context.Context, partnerID string) (uuid.UUID, bool, error)
	SavePantryItemsFunc      func(ctx context.Context, pantryStateID uuid.UUID, items []domain.PantryItem) error
	SavePantryStateFunc      func(ctx context.Context, state domain.PantryState) error

	calls struct {
		DeletePantry []struct {
			Ctx           context.Context
			PantryStateID uuid.UUID
		}
		GetPartnerPantryByID []struct {
			Ctx           context.Context
			PantryStateID uuid.UUID
			PartnerID     string
			PageSize      int
			Page          int
		}
		LatestPantryStateID []struct {
			Ctx       context.Context
			PartnerID string
		}
		SavePantryItems []struct {
			Ctx           context.Context
			PantryStateID uuid.UUID
			Items         []domain.PantryItem
		}
		SavePantryState []struct {
			Ctx   context.Context
			State domain.PantryState
		}
	}
	lockDeletePantry         sync.RWMutex
	lockGetPartnerPantryByID sync.RWMutex
	lockLatestPantryStateID  sync.RWMutex
	lockSavePantryItems      sync.RWMutex
	lockSavePantryState      sync.RWMutex
}

func (mock *pantryRepoMock) DeletePantry(ctx context.Context, pantryStateID uuid.UUID) error {
	if mock.DeletePantryFunc == nil {
		panic("pantryRepoMock.DeletePantryFunc: method is nil but pantryRepo.DeletePantry was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		PantryStateID uuid.UUID
	}{Ctx: ctx, PantryStateID: pantryStateID}
	mock.lockDeletePantry.Lock()
	mock.calls.DeletePantry = append(mock.calls.DeletePantry, callInfo)
	mock.lockDeletePantry.Unlock()
	return mock.DeletePantryFunc(ctx, pantryStateID)
}

func (mock *pantryRepoMock) DeletePantryCalls() []struct {
	Ctx           context.Context
	PantryStateID uuid.UUID
} {
	mock.lockDeletePantry.RLock()
	calls := mock.calls.DeletePantry
	mock.lockDeletePantry.RUnlock()
	return calls
}

func (mock *pantryRepoMock) GetPartnerPantryByID(ctx context.Context, pantryStateID uuid.UUID, partnerID string, pageSize int, page int) (*domain.Pantry, int, error) {
	if mock.GetPartnerPantryByIDFunc == nil {
		panic("pantryRepoMock.GetPartnerPantryByIDFunc: method is nil but pantryRepo.GetPartnerPantryByID was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		PantryStateID uuid.UUID
		PartnerID     string
		PageSize      int
		Page          int
	}{Ctx: ctx, PantryStateID: pantryStateID, PartnerID: partnerID, PageSize: pageSize, Page: page}
	mock.lockGetPartnerPantryByID.Lock()
	mock.calls.GetPartnerPantryByID = append(mock.calls.GetPartnerPantryByID, callInfo)
	mock.lockGetPartnerPantryByID.Unlock()
	return mock.GetPartnerPantryByIDFunc(ctx, pantryStateID, partnerID, pageSize, page)
}

func (mock *pantryRepoMock) GetPartnerPantryByIDCalls() []struct {
	Ctx           context.Context
	PantryStateID uuid.UUID
	PartnerID     string
	PageSize      int
	Page          int
} {
	mock.lockGetPartnerPantryByID.RLock()
	calls := mock.calls.GetPartnerPantryByID
	mock.lockGetPartnerPantryByID.RUnlock()
	return calls
}

func (mock *pantryRepoMock) LatestPantryStateID(ctx context.Context, partnerID string) (uuid.UUID, bool, error) {
	if mock.LatestPantryStateIDFunc == nil {
		panic("pantryRepoMock.LatestPantryStateIDFunc: method is nil but pantryRepo.LatestPantryStateID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		PartnerID string
	}{Ctx: ctx, PartnerID: partnerID}
	mock.lockLatestPantryStateID.Lock()
	mock.calls.LatestPantryStateID = append(mock.calls.LatestPantryStateID, callInfo)
	mock.lockLatestPantryStateID.Unlock()
	return mock.LatestPantryStateIDFunc(ctx, partnerID)
}

func (mock *pantryRepoMock) LatestPantryStateIDCalls() []struct {
	Ctx       context.Context
	PartnerID string
} {
	mock.lockLatestPantryStateID.RLock()
	calls := mock.calls.LatestPantryStateID
	mock.lockLatestPantryStateID.RUnlock()
	return calls
}

func (mock *pantryRepoMock) SavePantryItems(ctx context.Context, pantryStateID uuid.UUID, items []domain.PantryItem) error {
	if mock.SavePantryItemsFunc == nil {
		panic("pantryRepoMock.SavePantryItemsFunc: method is nil but pantryRepo.SavePantryItems was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		PantryStateID uuid.UUID
		Items         []domain.PantryItem
	}{Ctx: ctx, PantryStateID: pantryStateID, Items: items}
	mock.lockSavePantryItems.Lock()
	mock.calls.SavePantryItems = append(mock.calls.SavePantryItems, callInfo)
	mock.lockSavePantryItems.Unlock()
	return mock.SavePantryItemsFunc(ctx, pantryStateID, items)
}

func (mock *pantryRepoMock) SavePantryItemsCalls() []struct {
	Ctx           context.Context
	PantryStateID uuid.UUID
	Items         []domain.PantryItem
} {
	mock.lockSavePantryItems.RLock()
	calls := mock.calls.SavePantryItems
	mock.lockSavePantryItems.RUnlock()
	return calls
}

func (mock *pantryRepoMock) SavePantryState(ctx context.Context, state domain.PantryState) error {
	if mock.SavePantryStateFunc == nil {
		panic("pantryRepoMock.SavePantryStateFunc: method is nil but pantryRepo.SavePantryState was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		State domain.PantryState
	}{Ctx: ctx, State: state}
	mock.lockSavePantryState.Lock()
	mock.calls.SavePantryState = append(mock.calls.SavePantryState, callInfo)
	mock.lockSavePantryState.Unlock()
	return mock.SavePantryStateFunc(ctx, state)
}

func (mock *pantryRepoMock) SavePantryStateCalls() []struct {
	Ctx   context.Context
	State domain.PantryState
} {
	mock.lockSavePantryState.RLock()
	calls := mock.calls.SavePantryState
	mock.lockSavePantryState.RUnlock()
	return calls
}
