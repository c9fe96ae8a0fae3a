// Package pantry manages partner pantry states and keeps them in sync with culops.
package pantry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
	"github.com/heartmarshall/culops-pantry/internal/config"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

type pantryRepo interface {
	GetPartnerPantryByID(ctx context.Context, pantryStateID uuid.UUID, partnerID string, pageSize, page int) (*domain.Pantry, int, error)
	LatestPantryStateID(ctx context.Context, partnerID string) (uuid.UUID, bool, error)
	SavePantryState(ctx context.Context, state domain.PantryState) error
	SavePantryItems(ctx context.Context, pantryStateID uuid.UUID, items []domain.PantryItem) error
	DeletePantry(ctx context.Context, pantryStateID uuid.UUID) error
}

type idempotencyRepo interface {
	AddIdempotencyKey(ctx context.Context, key, action string) error
	IdempotencyKeyExists(ctx context.Context, key string) (bool, error)
}

type specificationSource interface {
	ListCulinaryIngredientSpecifications(ctx context.Context) (*culops.Document, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides pantry operations.
type Service struct {
	pantries pantryRepo
	keys     idempotencyRepo
	culops   specificationSource
	tx       txManager
	cfg      config.PantryConfig
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new pantry service.
func NewService(
	log *slog.Logger,
	pantries pantryRepo,
	keys idempotencyRepo,
	source specificationSource,
	tx txManager,
	cfg config.PantryConfig,
) *Service {
	return &Service{
		pantries: pantries,
		keys:     keys,
		culops:   source,
		tx:       tx,
		cfg:      cfg,
		now:      time.Now,
		log:      log.With("service", "pantry"),
	}
}

// withIDs returns a copy of items where every item without an id gets a new one.
func withIDs(items []domain.PantryItem) []domain.PantryItem {
	out := make([]domain.PantryItem, len(items))
	for i, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		out[i] = item
	}
	return out
}
