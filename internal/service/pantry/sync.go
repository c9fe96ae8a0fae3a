package pantry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/culops-pantry/internal/adapter/provider/culops"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// SyncResult reports the outcome of a culops sync. PantryStateID is the new
// state when one was written, otherwise the previous state (if any).
type SyncResult struct {
	PantryStateID uuid.UUID
	Diff          domain.PantryDiff
	Created       bool
	Replayed      bool
}

// SyncFromCulops fetches the current culinary ingredient specifications and
// diffs them against the partner's newest pantry state. A new state is
// written only when something changed.
func (s *Service) SyncFromCulops(ctx context.Context, input SyncPantryInput) (*SyncResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	key := domain.ScopedIdempotencyKey(input.PartnerID, domain.ActionSyncPantry, input.IdempotencyKey)

	exists, err := s.keys.IdempotencyKeyExists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check idempotency key: %w", err)
	}
	if exists {
		return &SyncResult{Replayed: true}, nil
	}

	doc, err := s.culops.ListCulinaryIngredientSpecifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch specifications: %w", err)
	}
	incoming, err := culops.NormalizePantryItems(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize specifications: %w", err)
	}

	var prevItems []domain.PantryItem
	prevID, found, err := s.pantries.LatestPantryStateID(ctx, input.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("latest pantry state: %w", err)
	}
	if found {
		prev, err := s.loadFull(ctx, input.PartnerID, prevID)
		if err != nil {
			return nil, fmt.Errorf("load pantry state %s: %w", prevID, err)
		}
		if prev != nil {
			prevItems = prev.Items
		}
	}

	diff := domain.DiffPantryItems(prevItems, incoming)
	result := &SyncResult{PantryStateID: prevID, Diff: diff}

	if found && diff.Empty() {
		if err := s.keys.AddIdempotencyKey(ctx, key, domain.ActionSyncPantry); err != nil {
			return nil, fmt.Errorf("record idempotency key: %w", err)
		}
		s.log.InfoContext(ctx, "pantry unchanged",
			slog.String("partner_id", input.PartnerID),
			slog.String("pantry_state_id", prevID.String()),
		)
		return result, nil
	}

	state := domain.PantryState{ID: uuid.New(), PartnerID: input.PartnerID, Timestamp: s.now()}
	items := withIDs(incoming)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		replayed, err := s.saveOnce(txCtx, key, domain.ActionSyncPantry, state, items)
		result.Replayed = replayed
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.Replayed {
		return &SyncResult{Replayed: true}, nil
	}
	result.PantryStateID = state.ID
	result.Created = true

	s.log.InfoContext(ctx, "pantry synced",
		slog.String("partner_id", input.PartnerID),
		slog.String("pantry_state_id", state.ID.String()),
		slog.Int("added", len(diff.Added)),
		slog.Int("changed", len(diff.Changed)),
		slog.Int("removed", len(diff.Removed)),
	)
	return result, nil
}

// ComparePantries diffs two pantry states of one partner. Both states are
// loaded concurrently.
func (s *Service) ComparePantries(ctx context.Context, input ComparePantriesInput) (domain.PantryDiff, error) {
	if err := input.Validate(); err != nil {
		return domain.PantryDiff{}, err
	}

	var from, to *domain.Pantry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		from, err = s.loadExisting(gctx, input.PartnerID, input.FromID)
		return err
	})
	g.Go(func() error {
		var err error
		to, err = s.loadExisting(gctx, input.PartnerID, input.ToID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.PantryDiff{}, err
	}

	return domain.DiffPantryItems(from.Items, to.Items), nil
}

func (s *Service) loadExisting(ctx context.Context, partnerID string, stateID uuid.UUID) (*domain.Pantry, error) {
	p, err := s.loadFull(ctx, partnerID, stateID)
	if err != nil {
		return nil, fmt.Errorf("load pantry state %s: %w", stateID, err)
	}
	if p == nil {
		return nil, fmt.Errorf("pantry state %s: %w", stateID, domain.ErrNotFound)
	}
	return p, nil
}
