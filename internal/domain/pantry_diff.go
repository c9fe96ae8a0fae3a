package domain

import (
	"cmp"
	"slices"
	"time"
)

// PantryItemChange pairs the stored and the incoming version of an item.
type PantryItemChange struct {
	Before PantryItem
	After  PantryItem
}

// PantryDiff is the result of reconciling two sets of pantry items.
// Every slice is sorted by data source key.
type PantryDiff struct {
	Added   []PantryItem
	Changed []PantryItemChange
	Removed []PantryItem
}

// Empty reports whether the diff carries no change.
func (d PantryDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// DiffPantryItems reconciles prev against next by data source. Item ids are
// ignored. Items without a data source cannot be keyed and are skipped; when
// a key repeats within one side its first occurrence wins.
func DiffPantryItems(prev, next []PantryItem) PantryDiff {
	before := indexByDataSource(prev)
	after := indexByDataSource(next)

	var diff PantryDiff
	for key, a := range after {
		b, ok := before[key]
		switch {
		case !ok:
			diff.Added = append(diff.Added, a)
		case !samePantryContent(b, a):
			diff.Changed = append(diff.Changed, PantryItemChange{Before: b, After: a})
		}
	}
	for key, b := range before {
		if _, ok := after[key]; !ok {
			diff.Removed = append(diff.Removed, b)
		}
	}

	slices.SortFunc(diff.Added, compareByDataSource)
	slices.SortFunc(diff.Removed, compareByDataSource)
	slices.SortFunc(diff.Changed, func(x, y PantryItemChange) int {
		return compareByDataSource(x.After, y.After)
	})
	return diff
}

func indexByDataSource(items []PantryItem) map[PantryItemDataSource]PantryItem {
	idx := make(map[PantryItemDataSource]PantryItem, len(items))
	for _, item := range items {
		if item.DataSource == nil {
			continue
		}
		if _, seen := idx[*item.DataSource]; seen {
			continue
		}
		idx[*item.DataSource] = item
	}
	return idx
}

func compareByDataSource(a, b PantryItem) int {
	if c := cmp.Compare(a.DataSource.CulinaryIngredientSpecificationID, b.DataSource.CulinaryIngredientSpecificationID); c != 0 {
		return c
	}
	return cmp.Compare(a.DataSource.CulinaryIngredientID, b.DataSource.CulinaryIngredientID)
}

func samePantryContent(a, b PantryItem) bool {
	if a.Description != b.Description || a.Amount != b.Amount || a.Units != b.Units ||
		a.IsPreppedAndReady != b.IsPreppedAndReady || !equalStringPtr(a.BrandName, b.BrandName) {
		return false
	}
	return slices.EqualFunc(a.Costs, b.Costs, func(x, y PantryItemCost) bool {
		return x.ProductionCostUSDollars == y.ProductionCostUSDollars &&
			equalTimePtr(x.StartDate, y.StartDate) && equalTimePtr(x.EndDate, y.EndDate)
	}) && slices.EqualFunc(a.Availability, b.Availability, func(x, y PantryItemAvailability) bool {
		return equalTimePtr(x.AvailableFrom, y.AvailableFrom) && equalTimePtr(x.AvailableUntil, y.AvailableUntil)
	}) && slices.Equal(a.CustomFields, b.CustomFields)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
