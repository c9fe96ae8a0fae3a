package assembly

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// AddAssemblyResult reports whether the call was a replay of an earlier one.
type AddAssemblyResult struct {
	Replayed bool
}

// AddAssembly maps an assembly to its culops assembly once per idempotency
// key. The key check, the mapping and the key itself share one transaction.
func (s *Service) AddAssembly(ctx context.Context, input AddAssemblyInput) (*AddAssemblyResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	key := domain.ScopedIdempotencyKey(input.PartnerID, domain.ActionAddAssembly, input.IdempotencyKey)

	result := &AddAssemblyResult{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.keys.IdempotencyKeyExists(txCtx, key)
		if err != nil {
			return fmt.Errorf("check idempotency key: %w", err)
		}
		if exists {
			result.Replayed = true
			return nil
		}

		if err := s.assemblies.AddAssembly(txCtx, input.PartnerID, input.AssemblyID, input.CulopsAssemblyID); err != nil {
			return fmt.Errorf("add assembly: %w", err)
		}
		if err := s.keys.AddIdempotencyKey(txCtx, key, domain.ActionAddAssembly); err != nil {
			return fmt.Errorf("record idempotency key: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "assembly added",
		slog.String("partner_id", input.PartnerID),
		slog.String("assembly_id", input.AssemblyID.String()),
		slog.Int64("culops_assembly_id", input.CulopsAssemblyID),
		slog.Bool("replayed", result.Replayed),
	)

	return result, nil
}
