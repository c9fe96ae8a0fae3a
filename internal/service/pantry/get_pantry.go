package pantry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// PantryPage is one page of a pantry state.
type PantryPage struct {
	Pantry     domain.Pantry
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

// GetPantry returns one page of a partner's pantry state.
func (s *Service) GetPantry(ctx context.Context, input GetPantryInput) (*PantryPage, error) {
	if err := input.validate(s.cfg.DefaultPageSize, s.cfg.MaxPageSize); err != nil {
		return nil, err
	}
	page, pageSize := input.Page, input.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = s.cfg.DefaultPageSize
	}

	p, total, err := s.pantries.GetPartnerPantryByID(ctx, input.PantryStateID, input.PartnerID, pageSize, page)
	if err != nil {
		return nil, fmt.Errorf("get pantry: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("pantry state %s: %w", input.PantryStateID, domain.ErrNotFound)
	}

	return &PantryPage{
		Pantry:     *p,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// DeletePantry removes a partner's pantry state and everything under it.
func (s *Service) DeletePantry(ctx context.Context, input DeletePantryInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, _, err := s.pantries.GetPartnerPantryByID(txCtx, input.PantryStateID, input.PartnerID, 1, 1)
		if err != nil {
			return fmt.Errorf("get pantry: %w", err)
		}
		if p == nil {
			return fmt.Errorf("pantry state %s: %w", input.PantryStateID, domain.ErrNotFound)
		}
		if err := s.pantries.DeletePantry(txCtx, input.PantryStateID); err != nil {
			return fmt.Errorf("delete pantry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "pantry deleted",
		slog.String("partner_id", input.PartnerID),
		slog.String("pantry_state_id", input.PantryStateID.String()),
	)
	return nil
}

// loadFull reads every item of a pantry state page by page. It returns nil
// when the state does not exist for the partner.
func (s *Service) loadFull(ctx context.Context, partnerID string, stateID uuid.UUID) (*domain.Pantry, error) {
	pageSize := s.cfg.MaxPageSize

	first, total, err := s.pantries.GetPartnerPantryByID(ctx, stateID, partnerID, pageSize, 1)
	if err != nil || first == nil {
		return first, err
	}
	full := *first
	for page := 2; len(full.Items) < total; page++ {
		next, _, err := s.pantries.GetPartnerPantryByID(ctx, stateID, partnerID, pageSize, page)
		if err != nil {
			return nil, err
		}
		if next == nil || len(next.Items) == 0 {
			break
		}
		full.Items = append(full.Items, next.Items...)
	}
	return &full, nil
}
