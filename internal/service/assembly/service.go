// Package assembly maps partner assemblies to culops assemblies.
package assembly

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

type assemblyRepo interface {
	GetMappedCulopsAssemblyIDs(ctx context.Context, partnerID string, assemblyIDs []uuid.UUID) ([]domain.AssemblyIDMapping, error)
	AddAssembly(ctx context.Context, partnerID string, assemblyID uuid.UUID, culopsAssemblyID int64) error
	DeleteAssembly(ctx context.Context, partnerID string, assemblyID uuid.UUID) error
}

type idempotencyRepo interface {
	AddIdempotencyKey(ctx context.Context, key, action string) error
	IdempotencyKeyExists(ctx context.Context, key string) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides assembly mapping operations.
type Service struct {
	assemblies assemblyRepo
	keys       idempotencyRepo
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new assembly service.
func NewService(log *slog.Logger, assemblies assemblyRepo, keys idempotencyRepo, tx txManager) *Service {
	return &Service{
		assemblies: assemblies,
		keys:       keys,
		tx:         tx,
		log:        log.With("service", "assembly"),
	}
}
