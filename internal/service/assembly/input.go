package assembly

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// MaxMappingLookup caps the ids of one mapping lookup.
const MaxMappingLookup = 500

// AddAssemblyInput holds the parameters for mapping a new assembly.
type AddAssemblyInput struct {
	PartnerID        string
	AssemblyID       uuid.UUID
	CulopsAssemblyID int64
	IdempotencyKey   string
}

// Validate checks all fields and collects all errors.
func (i AddAssemblyInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if i.AssemblyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assembly_id", Message: "required"})
	}
	if i.CulopsAssemblyID <= 0 {
		errs = append(errs, domain.FieldError{Field: "culops_assembly_id", Message: "must be positive"})
	}
	if strings.TrimSpace(i.IdempotencyKey) == "" {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GetMappingsInput holds the parameters for a mapping lookup.
type GetMappingsInput struct {
	PartnerID   string
	AssemblyIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i GetMappingsInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if len(i.AssemblyIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "assembly_ids", Message: "at least one id required"})
	}
	if len(i.AssemblyIDs) > MaxMappingLookup {
		errs = append(errs, domain.FieldError{Field: "assembly_ids", Message: "max 500 ids per lookup"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteAssemblyInput holds the parameters for removing an assembly.
type DeleteAssemblyInput struct {
	PartnerID  string
	AssemblyID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteAssemblyInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if i.AssemblyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assembly_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
