package pantry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// MaxItemsPerPantry caps the items of one created pantry state.
const MaxItemsPerPantry = 10000

// CreatePantryInput holds the parameters for creating a pantry state.
// Items without an id get one assigned.
type CreatePantryInput struct {
	PartnerID           string
	Timestamp           time.Time
	ItemsAvailableFrom  *time.Time
	ItemsAvailableUntil *time.Time
	Items               []domain.PantryItem
	IdempotencyKey      string
}

// Validate checks all fields and collects all errors.
func (i CreatePantryInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if strings.TrimSpace(i.IdempotencyKey) == "" {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "required"})
	}
	if i.ItemsAvailableFrom != nil && i.ItemsAvailableUntil != nil && i.ItemsAvailableUntil.Before(*i.ItemsAvailableFrom) {
		errs = append(errs, domain.FieldError{Field: "items_available_until", Message: "must not be before items_available_from"})
	}
	if len(i.Items) > MaxItemsPerPantry {
		errs = append(errs, domain.FieldError{Field: "items", Message: "max 10000 items per pantry"})
	}
	for idx, item := range i.Items {
		if item.DataSource == nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("items[%d].pantry_item_data_source", idx), Message: "required"})
		}
		for c, cost := range item.Costs {
			if cost.StartDate != nil && cost.EndDate != nil && cost.EndDate.Before(*cost.StartDate) {
				errs = append(errs, domain.FieldError{Field: fmt.Sprintf("items[%d].costs[%d]", idx, c), Message: "end_date before start_date"})
			}
		}
		errs = append(errs, domain.DuplicateItemChildren(idx, item)...)
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GetPantryInput holds the parameters for reading one page of a pantry state.
// Zero Page and PageSize select the first page and the configured default size.
type GetPantryInput struct {
	PartnerID     string
	PantryStateID uuid.UUID
	Page          int
	PageSize      int
}

func (i GetPantryInput) validate(defaultPageSize, maxPageSize int) error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if i.PantryStateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "pantry_state_id", Message: "required"})
	}
	if i.Page < 0 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be >= 1"})
	}
	if i.PageSize < 0 || i.PageSize > maxPageSize {
		errs = append(errs, domain.FieldError{Field: "page_size", Message: "out of range"})
	}
	if i.Page > 0 {
		size := i.PageSize
		if size <= 0 {
			size = defaultPageSize
		}
		if _, ok := domain.PageOffset(i.Page, max(size, 1)); !ok {
			errs = append(errs, domain.FieldError{Field: "page", Message: "too large"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeletePantryInput holds the parameters for deleting a pantry state.
type DeletePantryInput struct {
	PartnerID     string
	PantryStateID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeletePantryInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if i.PantryStateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "pantry_state_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SyncPantryInput holds the parameters for syncing a partner pantry from culops.
type SyncPantryInput struct {
	PartnerID      string
	IdempotencyKey string
}

// Validate checks all fields and collects all errors.
func (i SyncPantryInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if strings.TrimSpace(i.IdempotencyKey) == "" {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ComparePantriesInput names two pantry states of one partner.
type ComparePantriesInput struct {
	PartnerID string
	FromID    uuid.UUID
	ToID      uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i ComparePantriesInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.PartnerID) == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if i.FromID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if i.ToID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
