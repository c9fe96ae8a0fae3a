package pantry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// CreatePantryResult identifies the created state. A replayed call carries
// no state id.
type CreatePantryResult struct {
	PantryStateID uuid.UUID
	ItemCount     int
	Replayed      bool
}

// CreatePantry saves a new pantry state with its items once per idempotency key.
func (s *Service) CreatePantry(ctx context.Context, input CreatePantryInput) (*CreatePantryResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	state := domain.PantryState{
		ID:                  uuid.New(),
		PartnerID:           input.PartnerID,
		Timestamp:           input.Timestamp,
		ItemsAvailableFrom:  input.ItemsAvailableFrom,
		ItemsAvailableUntil: input.ItemsAvailableUntil,
	}
	if state.Timestamp.IsZero() {
		state.Timestamp = s.now()
	}
	items := withIDs(input.Items)
	key := domain.ScopedIdempotencyKey(input.PartnerID, domain.ActionCreatePantry, input.IdempotencyKey)

	result := &CreatePantryResult{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		replayed, err := s.saveOnce(txCtx, key, domain.ActionCreatePantry, state, items)
		result.Replayed = replayed
		return err
	})
	if err != nil {
		return nil, err
	}
	if !result.Replayed {
		result.PantryStateID = state.ID
		result.ItemCount = len(items)
	}

	s.log.InfoContext(ctx, "pantry created",
		slog.String("partner_id", input.PartnerID),
		slog.String("pantry_state_id", result.PantryStateID.String()),
		slog.Int("items", result.ItemCount),
		slog.Bool("replayed", result.Replayed),
	)
	return result, nil
}

// saveOnce writes state and items unless key is live, then records key.
// key must already be scoped to the partner and action. It must run inside
// a transaction.
func (s *Service) saveOnce(ctx context.Context, key, action string, state domain.PantryState, items []domain.PantryItem) (bool, error) {
	exists, err := s.keys.IdempotencyKeyExists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check idempotency key: %w", err)
	}
	if exists {
		return true, nil
	}

	if err := s.pantries.SavePantryState(ctx, state); err != nil {
		return false, fmt.Errorf("save pantry state: %w", err)
	}
	if err := s.pantries.SavePantryItems(ctx, state.ID, items); err != nil {
		return false, fmt.Errorf("save pantry items: %w", err)
	}
	if err := s.keys.AddIdempotencyKey(ctx, key, action); err != nil {
		return false, fmt.Errorf("record idempotency key: %w", err)
	}
	return false, nil
}
