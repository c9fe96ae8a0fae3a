package assembly

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// GetMappings returns one mapping per distinct requested assembly id.
func (s *Service) GetMappings(ctx context.Context, input GetMappingsInput) ([]domain.AssemblyIDMapping, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	mappings, err := s.assemblies.GetMappedCulopsAssemblyIDs(ctx, input.PartnerID, input.AssemblyIDs)
	if err != nil {
		return nil, fmt.Errorf("get mappings: %w", err)
	}
	return mappings, nil
}

// DeleteAssembly removes an assembly and its mapping. Missing assemblies are ignored.
func (s *Service) DeleteAssembly(ctx context.Context, input DeleteAssemblyInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.assemblies.DeleteAssembly(ctx, input.PartnerID, input.AssemblyID); err != nil {
		return fmt.Errorf("delete assembly: %w", err)
	}

	s.log.InfoContext(ctx, "assembly deleted",
		slog.String("partner_id", input.PartnerID),
		slog.String("assembly_id", input.AssemblyID.String()),
	)
	return nil
}
