package pantry

import (
	"context"
	"sync"
)

var _ idempotencyRepo = &idempotencyRepoMock{}

type idempotencyRepoMock struct {
	AddIdempotencyKeyFunc    func(ctx context.Context, key string, action string) error
	IdempotencyKeyExistsFunc func(ctx context.Context, key string) (bool, error)

	calls struct {
		AddIdempotencyKey []struct {
			Ctx    context.Context
			Key    string
			Action string
		}
		IdempotencyKeyExists []struct {
			Ctx context.Context
			Key string
		}
	}
	lockAddIdempotencyKey    sync.RWMutex
	lockIdempotencyKeyExists sync.RWMutex
}

func (mock *idempotencyRepoMock) AddIdempotencyKey(ctx context.Context, key string, action string) error {
	if mock.AddIdempotencyKeyFunc == nil {
		panic("idempotencyRepoMock.AddIdempotencyKeyFunc: method is nil but idempotencyRepo.AddIdempotencyKey was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Key    string
		Action string
	}{Ctx: ctx, Key: key, Action: action}
	mock.lockAddIdempotencyKey.Lock()
	mock.calls.AddIdempotencyKey = append(mock.calls.AddIdempotencyKey, callInfo)
	mock.lockAddIdempotencyKey.Unlock()
	return mock.AddIdempotencyKeyFunc(ctx, key, action)
}

func (mock *idempotencyRepoMock) AddIdempotencyKeyCalls() []struct {
	Ctx    context.Context
	Key    string
	Action string
} {
	mock.lockAddIdempotencyKey.RLock()
	calls := mock.calls.AddIdempotencyKey
	mock.lockAddIdempotencyKey.RUnlock()
	return calls
}

func (mock *idempotencyRepoMock) IdempotencyKeyExists(ctx context.Context, key string) (bool, error) {
	if mock.IdempotencyKeyExistsFunc == nil {
		panic("idempotencyRepoMock.IdempotencyKeyExistsFunc: method is nil but idempotencyRepo.IdempotencyKeyExists was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockIdempotencyKeyExists.Lock()
	mock.calls.IdempotencyKeyExists = append(mock.calls.IdempotencyKeyExists, callInfo)
	mock.lockIdempotencyKeyExists.Unlock()
	return mock.IdempotencyKeyExistsFunc(ctx, key)
}

func (mock *idempotencyRepoMock) IdempotencyKeyExistsCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockIdempotencyKeyExists.RLock()
	calls := mock.calls.IdempotencyKeyExists
	mock.lockIdempotencyKeyExists.RUnlock()
	return calls
}
