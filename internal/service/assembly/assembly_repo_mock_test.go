package assembly

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

var _ assemblyRepo = &assemblyRepoMock{}

type assemblyRepoMock struct {
	GetMappedCulopsAssemblyIDsFunc func(ctx context.Context, partnerID string, assemblyIDs []uuid.UUID) ([]domain.AssemblyIDMapping, error)
	AddAssemblyFunc                func(ctx context.Context, partnerID string, assemblyID uuid.UUID, culopsAssemblyID int64) error
	DeleteAssemblyFunc             func(ctx context.Context, partnerID string, assemblyID uuid.UUID) error

	calls struct {
		GetMappedCulopsAssemblyIDs []struct {
			Ctx         context.Context
			PartnerID   string
			AssemblyIDs []uuid.UUID
		}
		AddAssembly []struct {
			Ctx              context.Context
			PartnerID        string
			AssemblyID       uuid.UUID
			CulopsAssemblyID int64
		}
		DeleteAssembly []struct {
			Ctx        context.Context
			PartnerID  string
			AssemblyID uuid.UUID
		}
	}
	lockGetMappedCulopsAssemblyIDs sync.RWMutex
	lockAddAssembly                sync.RWMutex
	lockDeleteAssembly             sync.RWMutex
}

func (mock *assemblyRepoMock) GetMappedCulopsAssemblyIDs(ctx context.Context, partnerID string, assemblyIDs []uuid.UUID) ([]domain.AssemblyIDMapping, error) {
	if mock.GetMappedCulopsAssemblyIDsFunc == nil {
		panic("assemblyRepoMock.GetMappedCulopsAssemblyIDsFunc: method is nil but assemblyRepo.GetMappedCulopsAssemblyIDs was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PartnerID   string
		AssemblyIDs []uuid.UUID
	}{Ctx: ctx, PartnerID: partnerID, AssemblyIDs: assemblyIDs}
	mock.lockGetMappedCulopsAssemblyIDs.Lock()
	mock.calls.GetMappedCulopsAssemblyIDs = append(mock.calls.GetMappedCulopsAssemblyIDs, callInfo)
	mock.lockGetMappedCulopsAssemblyIDs.Unlock()
	return mock.GetMappedCulopsAssemblyIDsFunc(ctx, partnerID, assemblyIDs)
}

func (mock *assemblyRepoMock) GetMappedCulopsAssemblyIDsCalls() []struct {
	Ctx         context.Context
	PartnerID   string
	AssemblyIDs []uuid.UUID
} {
	mock.lockGetMappedCulopsAssemblyIDs.RLock()
	calls := mock.calls.GetMappedCulopsAssemblyIDs
	mock.lockGetMappedCulopsAssemblyIDs.RUnlock()
	return calls
}

func (mock *assemblyRepoMock) AddAssembly(ctx context.Context, partnerID string, assemblyID uuid.UUID, culopsAssemblyID int64) error {
	if mock.AddAssemblyFunc == nil {
		panic("assemblyRepoMock.AddAssemblyFunc: method is nil but assemblyRepo.AddAssembly was just called")
	}
	callInfo := struct {
		Ctx              context.Context
		PartnerID        string
		AssemblyID       uuid.UUID
		CulopsAssemblyID int64
	}{Ctx: ctx, PartnerID: partnerID, AssemblyID: assemblyID, CulopsAssemblyID: culopsAssemblyID}
	mock.lockAddAssembly.Lock()
	mock.calls.AddAssembly = append(mock.calls.AddAssembly, callInfo)
	mock.lockAddAssembly.Unlock()
	return mock.AddAssemblyFunc(ctx, partnerID, assemblyID, culopsAssemblyID)
}

func (mock *assemblyRepoMock) AddAssemblyCalls() []struct {
	Ctx              context.Context
	PartnerID        string
	AssemblyID       uuid.UUID
	CulopsAssemblyID int64
} {
	mock.lockAddAssembly.RLock()
	calls := mock.calls.AddAssembly
	mock.lockAddAssembly.RUnlock()
	return calls
}

func (mock *assemblyRepoMock) DeleteAssembly(ctx context.Context, partnerID string, assemblyID uuid.UUID) error {
	if mock.DeleteAssemblyFunc == nil {
		panic("assemblyRepoMock.DeleteAssemblyFunc: method is nil but assemblyRepo.DeleteAssembly was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		PartnerID  string
		AssemblyID uuid.UUID
	}{Ctx: ctx, PartnerID: partnerID, AssemblyID: assemblyID}
	mock.lockDeleteAssembly.Lock()
	mock.calls.DeleteAssembly = append(mock.calls.DeleteAssembly, callInfo)
	mock.lockDeleteAssembly.Unlock()
	return mock.DeleteAssemblyFunc(ctx, partnerID, assemblyID)
}

func (mock *assemblyRepoMock) DeleteAssemblyCalls() []struct {
	Ctx        context.Context
	PartnerID  string
	AssemblyID uuid.UUID
} {
	mock.lockDeleteAssembly.RLock()
	calls := mock.calls.DeleteAssembly
	mock.lockDeleteAssembly.RUnlock()
	return calls
}
