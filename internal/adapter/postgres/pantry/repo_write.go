package pantry

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// maxRowsPerInsert keeps a multi-row INSERT under PostgreSQL's 65535 bind
// parameter limit for the widest table written here.
const maxRowsPerInsert = 1000

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// SavePantryState inserts the snapshot header row.
func (r *Repo) SavePantryState(ctx context.Context, state domain.PantryState) error {
	var errs []domain.FieldError
	if state.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "pantry_state_id", Message: "required"})
	}
	if state.PartnerID == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO pantry_states (id, partner_id, pantry_state_timestamp, items_available_from, items_available_until)
		 VALUES ($1, $2, $3, $4, $5)`,
		state.ID, state.PartnerID, state.Timestamp, state.ItemsAvailableFrom, state.ItemsAvailableUntil,
	)
	return postgres.WrapError(err, "save pantry state %s for partner %s", state.ID, state.PartnerID)
}

// SavePantryItems bulk-inserts items and their child records into the given
// state in one transaction, one multi-row INSERT per table. Every item must
// carry a data source; the whole batch is validated before any write.
func (r *Repo) SavePantryItems(ctx context.Context, pantryStateID uuid.UUID, items []domain.PantryItem) error {
	if err := domain.ValidatePantryItemsForSave(items); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	itemsQ := postgres.Builder().Insert("pantry_items").
		Columns("id", "pantry_state_id", "description", "amount", "units", "is_prepped_and_ready", "brand_name")
	sourcesQ := postgres.Builder().Insert("pantry_item_data_sources").
		Columns("pantry_item_id", "culops_culinary_ingredient_specification_id", "culops_culinary_ingredient_id")
	costsQ := postgres.Builder().Insert("pantry_item_costs").
		Columns("pantry_item_id", "position", "production_cost_us_dollars", "start_date", "end_date")
	availabilityQ := postgres.Builder().Insert("pantry_item_availabilities").
		Columns("pantry_item_id", "position", "available_from", "available_until")
	fieldsQ := postgres.Builder().Insert("pantry_item_custom_fields").
		Columns("pantry_item_id", "position", "key", "value")

	var itemRows, sourceRows, costRows, availabilityRows, fieldRows [][]any
	for _, item := range items {
		itemRows = append(itemRows, []any{
			item.ID, pantryStateID, item.Description, item.Amount, item.Units, item.IsPreppedAndReady, item.BrandName,
		})
		sourceRows = append(sourceRows, []any{
			item.ID, item.DataSource.CulinaryIngredientSpecificationID, item.DataSource.CulinaryIngredientID,
		})
		for pos, c := range item.Costs {
			costRows = append(costRows, []any{item.ID, pos, c.ProductionCostUSDollars, formatDate(c.StartDate), formatDate(c.EndDate)})
		}
		for pos, a := range item.Availability {
			availabilityRows = append(availabilityRows, []any{item.ID, pos, formatDate(a.AvailableFrom), formatDate(a.AvailableUntil)})
		}
		for pos, f := range item.CustomFields {
			fieldRows = append(fieldRows, []any{item.ID, pos, f.Key, f.Value})
		}
	}

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		if err := insertRows(ctx, q, itemsQ, itemRows); err != nil {
			return fmt.Errorf("pantry_items: %w", err)
		}
		if err := insertRows(ctx, q, sourcesQ, sourceRows); err != nil {
			return fmt.Errorf("pantry_item_data_sources: %w", err)
		}
		if err := insertRows(ctx, q, costsQ, costRows); err != nil {
			return fmt.Errorf("pantry_item_costs: %w", err)
		}
		if err := insertRows(ctx, q, availabilityQ, availabilityRows); err != nil {
			return fmt.Errorf("pantry_item_availabilities: %w", err)
		}
		if err := insertRows(ctx, q, fieldsQ, fieldRows); err != nil {
			return fmt.Errorf("pantry_item_custom_fields: %w", err)
		}
		return nil
	})
	return postgres.WrapError(err, "save %d pantry items for state %s", len(items), pantryStateID)
}

// insertRows executes base with rows as VALUES, chunked by maxRowsPerInsert.
// No rows means no statement.
func insertRows(ctx context.Context, q postgres.Querier, base squirrel.InsertBuilder, rows [][]any) error {
	for start := 0; start < len(rows); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(rows))

		stmt := base
		for _, row := range rows[start:end] {
			stmt = stmt.Values(row...)
		}

		sql, args, err := stmt.ToSql()
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

// DeletePantry removes a pantry state and everything under it, children
// first, in one transaction.
func (r *Repo) DeletePantry(ctx context.Context, pantryStateID uuid.UUID) error {
	const itemsOfState = `pantry_item_id IN (SELECT id FROM pantry_items WHERE pantry_state_id = $1)`

	statements := []string{
		`DELETE FROM pantry_item_costs WHERE ` + itemsOfState,
		`DELETE FROM pantry_item_availabilities WHERE ` + itemsOfState,
		`DELETE FROM pantry_item_custom_fields WHERE ` + itemsOfState,
		`DELETE FROM pantry_item_data_sources WHERE ` + itemsOfState,
		`DELETE FROM pantry_items WHERE pantry_state_id = $1`,
		`DELETE FROM pantry_states WHERE id = $1`,
	}

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)
		for _, sql := range statements {
			if _, err := q.Exec(ctx, sql, pantryStateID); err != nil {
				return err
			}
		}
		return nil
	})
	return postgres.WrapError(err, "delete pantry %s", pantryStateID)
}

// SaveCostMarkups upserts partner cost markups keyed by partner and window.
func (r *Repo) SaveCostMarkups(ctx context.Context, markups []domain.PartnerCostMarkup) error {
	for i, m := range markups {
		if m.PartnerID == "" {
			return domain.NewValidationError(fmt.Sprintf("markups[%d].partner_id", i), "required")
		}
	}
	if len(markups) == 0 {
		return nil
	}

	stmt := postgres.Builder().Insert("cost_markups").
		Columns("partner_id", "applied_from", "applied_until", "markup_percent").
		Suffix("ON CONFLICT ON CONSTRAINT uq_cost_markups_window DO UPDATE SET markup_percent = EXCLUDED.markup_percent")
	for _, m := range markups {
		stmt = stmt.Values(m.PartnerID, formatDate(m.AppliedFrom), formatDate(m.AppliedUntil), m.MarkupPercent)
	}

	sql, args, err := stmt.ToSql()
	if err != nil {
		return postgres.WrapError(err, "build cost markup insert")
	}

	_, err = postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	return postgres.WrapError(err, "save %d cost markups", len(markups))
}
