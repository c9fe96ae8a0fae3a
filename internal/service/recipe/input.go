package recipe

import (
	"strings"
	"time"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// SyncRecipesInput holds the parameters for syncing one recipe cycle.
type SyncRecipesInput struct {
	PartnerID string
	CycleDate time.Time
}

// Validate checks all fields and collects all errors.
func (i SyncRecipesInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if i.CycleDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "cycle_date", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListRecipesInput selects a partner's stored recipes. A nil CycleDate lists every cycle.
type ListRecipesInput struct {
	PartnerID string
	CycleDate *time.Time
}

// Validate checks all fields and collects all errors.
func (i ListRecipesInput) Validate() error {
	if strings.TrimSpace(i.PartnerID) == "" {
		return domain.NewValidationError("partner_id", "required")
	}
	return nil
}
