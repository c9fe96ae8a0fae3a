package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// PantryState is a dated snapshot header for one partner's pantry.
// ItemsAvailableFrom/ItemsAvailableUntil bound the whole snapshot; nil means unbounded.
type PantryState struct {
	ID                  uuid.UUID
	PartnerID           string
	Timestamp           time.Time
	ItemsAvailableFrom  *time.Time
	ItemsAvailableUntil *time.Time
}

// PantryItemDataSource links a pantry item to the culops specification and
// culinary ingredient that produced it.
type PantryItemDataSource struct {
	CulinaryIngredientSpecificationID int64
	CulinaryIngredientID              int64
}

// PantryItemCulinaryIngredientSpecification is the data source as returned by
// lookups keyed by pantry item id.
type PantryItemCulinaryIngredientSpecification = PantryItemDataSource

// PantryItemCost is one entry of an item's cost history. A nil bound leaves
// the window open on that side.
type PantryItemCost struct {
	ProductionCostUSDollars float64
	StartDate               *time.Time
	EndDate                 *time.Time
}

// PantryItemAvailability is one availability window of an item.
type PantryItemAvailability struct {
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
}

// PantryItemCustomField is a free-form key/value attached to an item.
type PantryItemCustomField struct {
	Key   string
	Value string
}

// PantryItem is one ingredient line of a pantry state. Child collections are
// ordered and always supplied whole to NewPantryItem.
type PantryItem struct {
	ID                uuid.UUID
	Description       string
	Amount            float64
	Units             string
	IsPreppedAndReady bool
	BrandName         *string
	DataSource        *PantryItemDataSource
	Costs             []PantryItemCost
	Availability      []PantryItemAvailability
	CustomFields      []PantryItemCustomField
}

// NewPantryItem returns item with its child collections attached. The slices
// are copied so the caller cannot mutate the returned value through them.
func NewPantryItem(item PantryItem, costs []PantryItemCost, availability []PantryItemAvailability, fields []PantryItemCustomField) PantryItem {
	item.Costs = append([]PantryItemCost(nil), costs...)
	item.Availability = append([]PantryItemAvailability(nil), availability...)
	item.CustomFields = append([]PantryItemCustomField(nil), fields...)
	if item.DataSource != nil {
		ds := *item.DataSource
		item.DataSource = &ds
	}
	return item
}

// PartnerCostMarkup is a partner-wide cost multiplier over a date range.
// Nil bounds mean "always".
type PartnerCostMarkup struct {
	PartnerID     string
	AppliedFrom   *time.Time
	AppliedUntil  *time.Time
	MarkupPercent float64
}

// Pantry is a pantry state together with one page of its items and the
// partner's cost markups.
type Pantry struct {
	State       PantryState
	Items       []PantryItem
	CostMarkups []PartnerCostMarkup
}

// RecipePantryItemData is the lightweight view of a pantry item referenced by a recipe.
type RecipePantryItemData struct {
	PantryItemID      uuid.UUID
	IsPreppedAndReady bool
}

// ValidatePantryItemsForSave checks the whole batch before any write: every
// item needs an id and a data source.
func ValidatePantryItemsForSave(items []PantryItem) error {
	var errs []FieldError
	for i, item := range items {
		if item.ID == uuid.Nil {
			errs = append(errs, FieldError{Field: fmt.Sprintf("items[%d].id", i), Message: "required"})
		}
		if item.DataSource == nil {
			errs = append(errs, FieldError{Field: fmt.Sprintf("items[%d].pantry_item_data_source", i), Message: "required"})
		}
		errs = append(errs, DuplicateItemChildren(i, item)...)
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// DuplicateItemChildren reports children of the item at index that repeat
// an earlier one: custom fields by key, costs and availability by window.
// Windows are stored at day precision, so they compare by date.
func DuplicateItemChildren(index int, item PantryItem) []FieldError {
	var errs []FieldError

	keys := make(map[string]struct{}, len(item.CustomFields))
	for j, f := range item.CustomFields {
		if _, ok := keys[f.Key]; ok {
			errs = append(errs, FieldError{Field: fmt.Sprintf("items[%d].custom_fields[%d].key", index, j), Message: "duplicate key"})
		}
		keys[f.Key] = struct{}{}
	}

	costs := make(map[string]struct{}, len(item.Costs))
	for j, c := range item.Costs {
		w := windowKey(c.StartDate, c.EndDate)
		if _, ok := costs[w]; ok {
			errs = append(errs, FieldError{Field: fmt.Sprintf("items[%d].costs[%d]", index, j), Message: "duplicate window"})
		}
		costs[w] = struct{}{}
	}

	avail := make(map[string]struct{}, len(item.Availability))
	for j, a := range item.Availability {
		w := windowKey(a.AvailableFrom, a.AvailableUntil)
		if _, ok := avail[w]; ok {
			errs = append(errs, FieldError{Field: fmt.Sprintf("items[%d].availability[%d]", index, j), Message: "duplicate window"})
		}
		avail[w] = struct{}{}
	}

	return errs
}

func windowKey(from, until *time.Time) string {
	day := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(time.DateOnly)
	}
	return day(from) + "/" + day(until)
}

// PageOffset returns the row offset of a 1-based page. ok is false when
// page or pageSize is below 1 or the offset does not fit a signed 64-bit
// integer, the widest OFFSET PostgreSQL accepts.
func PageOffset(page, pageSize int) (offset int64, ok bool) {
	if page < 1 || pageSize < 1 {
		return 0, false
	}
	if int64(page-1) > math.MaxInt64/int64(pageSize) {
		return 0, false
	}
	return int64(page-1) * int64(pageSize), true
}
