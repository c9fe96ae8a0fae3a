package recipe

import (
	"context"
	"sync"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

var _ partnerRepo = &partnerRepoMock{}

type partnerRepoMock struct {
	GetConfigurationFunc func(ctx context.Context, partnerID string) (*domain.PartnerConfiguration, error)

	calls struct {
		GetConfiguration []struct {
			Ctx       context.Context
			PartnerID string
		}
	}
	lockGetConfiguration sync.RWMutex
}

func (mock *partnerRepoMock) GetConfiguration(ctx context.Context, partnerID string) (*domain.PartnerConfiguration, error) {
	if mock.GetConfigurationFunc == nil {
		panic("partnerRepoMock.GetConfigurationFunc: method is nil but partnerRepo.GetConfiguration was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		PartnerID string
	}{Ctx: ctx, PartnerID: partnerID}
	mock.lockGetConfiguration.Lock()
	mock.calls.GetConfiguration = append(mock.calls.GetConfiguration, callInfo)
	mock.lockGetConfiguration.Unlock()
	return mock.GetConfigurationFunc(ctx, partnerID)
}

func (mock *partnerRepoMock) GetConfigurationCalls() []struct {
	Ctx       context.Context
	PartnerID string
} {
	mock.lockGetConfiguration.RLock()
	calls := mock.calls.GetConfiguration
	mock.lockGetConfiguration.RUnlock()
	return calls
}
