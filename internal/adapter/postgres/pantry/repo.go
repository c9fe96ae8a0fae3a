// Package pantry implements the pantry store: dated pantry states, their
// items and each item's cost history, availability windows, custom fields
// and culops data source.
package pantry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// Repo provides pantry persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new pantry repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// ---------------------------------------------------------------------------
// Row types
// ---------------------------------------------------------------------------

type stateRow struct {
	ID                  uuid.UUID  `db:"id"`
	PartnerID           string     `db:"partner_id"`
	Timestamp           time.Time  `db:"pantry_state_timestamp"`
	ItemsAvailableFrom  *time.Time `db:"items_available_from"`
	ItemsAvailableUntil *time.Time `db:"items_available_until"`
}

type itemRow struct {
	ID                   uuid.UUID `db:"id"`
	Description          string    `db:"description"`
	Amount               float64   `db:"amount"`
	Units                string    `db:"units"`
	IsPreppedAndReady    bool      `db:"is_prepped_and_ready"`
	BrandName            *string   `db:"brand_name"`
	SpecificationID      *int64    `db:"specification_id"`
	CulinaryIngredientID *int64    `db:"culinary_ingredient_id"`
}

type costRow struct {
	PantryItemID            uuid.UUID `db:"pantry_item_id"`
	ProductionCostUSDollars float64   `db:"production_cost_us_dollars"`
	StartDate               any       `db:"start_date"`
	EndDate                 any       `db:"end_date"`
}

type availabilityRow struct {
	PantryItemID   uuid.UUID `db:"pantry_item_id"`
	AvailableFrom  any       `db:"available_from"`
	AvailableUntil any       `db:"available_until"`
}

type customFieldRow struct {
	PantryItemID uuid.UUID `db:"pantry_item_id"`
	Key          string    `db:"key"`
	Value        string    `db:"value"`
}

type markupRow struct {
	PartnerID     string  `db:"partner_id"`
	AppliedFrom   any     `db:"applied_from"`
	AppliedUntil  any     `db:"applied_until"`
	MarkupPercent float64 `db:"markup_percent"`
}

type dataSourceRow struct {
	PantryItemID         uuid.UUID `db:"pantry_item_id"`
	SpecificationID      int64     `db:"specification_id"`
	CulinaryIngredientID int64     `db:"culinary_ingredient_id"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetPartnerPantryByID returns the pantry state scoped to partnerID with one
// page of its items (ordered by id) and the partner's cost markups, plus the
// total item count of the state. It returns (nil, 0, nil) when the state does
// not exist for the partner.
func (r *Repo) GetPartnerPantryByID(ctx context.Context, pantryStateID uuid.UUID, partnerID string, pageSize, page int) (*domain.Pantry, int, error) {
	var errs []domain.FieldError
	if pageSize < 1 {
		errs = append(errs, domain.FieldError{Field: "page_size", Message: "must be >= 1"})
	}
	if page < 1 {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be >= 1"})
	}
	if len(errs) > 0 {
		return nil, 0, domain.NewValidationErrors(errs)
	}
	offset, ok := domain.PageOffset(page, pageSize)
	if !ok {
		return nil, 0, domain.NewValidationError("page", "too large")
	}

	var (
		result *domain.Pantry
		total  int
	)

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		var state stateRow
		err := pgxscan.Get(ctx, q, &state,
			`SELECT id, partner_id, pantry_state_timestamp, items_available_from, items_available_until
			 FROM pantry_states WHERE id = $1 AND partner_id = $2`,
			pantryStateID, partnerID,
		)
		if pgxscan.NotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		var count int64
		if err := q.QueryRow(ctx,
			`SELECT count(*) FROM pantry_items WHERE pantry_state_id = $1`,
			pantryStateID,
		).Scan(&count); err != nil {
			return err
		}

		items, err := r.loadItemPage(ctx, q, pantryStateID, pageSize, offset)
		if err != nil {
			return err
		}

		markups, err := r.loadCostMarkups(ctx, q, partnerID)
		if err != nil {
			return err
		}

		result = &domain.Pantry{
			State: domain.PantryState{
				ID:                  state.ID,
				PartnerID:           state.PartnerID,
				Timestamp:           state.Timestamp,
				ItemsAvailableFrom:  state.ItemsAvailableFrom,
				ItemsAvailableUntil: state.ItemsAvailableUntil,
			},
			Items:       items,
			CostMarkups: markups,
		}
		total = int(count)
		return nil
	})
	if err != nil {
		return nil, 0, postgres.WrapError(err, "get pantry %s for partner %s", pantryStateID, partnerID)
	}
	return result, total, nil
}

func (r *Repo) loadItemPage(ctx context.Context, q postgres.Querier, pantryStateID uuid.UUID, pageSize int, offset int64) ([]domain.PantryItem, error) {
	query := postgres.Builder().
		Select(
			"i.id", "i.description", "i.amount", "i.units", "i.is_prepped_and_ready", "i.brand_name",
			"ds.culops_culinary_ingredient_specification_id AS specification_id",
			"ds.culops_culinary_ingredient_id AS culinary_ingredient_id",
		).
		From("pantry_items i").
		LeftJoin("pantry_item_data_sources ds ON ds.pantry_item_id = i.id").
		Where("i.pantry_state_id = ?", pantryStateID).
		OrderBy("i.id").
		Limit(uint64(pageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item page query: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.PantryItem{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	costs, err := r.loadCosts(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	availability, err := r.loadAvailability(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	fields, err := r.loadCustomFields(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PantryItem, len(rows))
	for i, row := range rows {
		base := domain.PantryItem{
			ID:                row.ID,
			Description:       row.Description,
			Amount:            row.Amount,
			Units:             row.Units,
			IsPreppedAndReady: row.IsPreppedAndReady,
			BrandName:         row.BrandName,
		}
		if row.SpecificationID != nil && row.CulinaryIngredientID != nil {
			base.DataSource = &domain.PantryItemDataSource{
				CulinaryIngredientSpecificationID: *row.SpecificationID,
				CulinaryIngredientID:              *row.CulinaryIngredientID,
			}
		}
		items[i] = domain.NewPantryItem(base, costs[row.ID], availability[row.ID], fields[row.ID])
	}
	return items, nil
}

func (r *Repo) loadCosts(ctx context.Context, q postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]domain.PantryItemCost, error) {
	sql, args, err := postgres.Builder().
		Select("pantry_item_id", "production_cost_us_dollars", "start_date", "end_date").
		From("pantry_item_costs").
		Where(squirrel.Eq{"pantry_item_id": ids}).
		OrderBy("pantry_item_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cost query: %w", err)
	}

	var rows []costRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]domain.PantryItemCost, len(ids))
	for _, row := range rows {
		start, err := parseDate(row.StartDate)
		if err != nil {
			return nil, fmt.Errorf("cost start_date of item %s: %w", row.PantryItemID, err)
		}
		end, err := parseDate(row.EndDate)
		if err != nil {
			return nil, fmt.Errorf("cost end_date of item %s: %w", row.PantryItemID, err)
		}
		out[row.PantryItemID] = append(out[row.PantryItemID], domain.PantryItemCost{
			ProductionCostUSDollars: row.ProductionCostUSDollars,
			StartDate:               start,
			EndDate:                 end,
		})
	}
	return out, nil
}

func (r *Repo) loadAvailability(ctx context.Context, q postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]domain.PantryItemAvailability, error) {
	sql, args, err := postgres.Builder().
		Select("pantry_item_id", "available_from", "available_until").
		From("pantry_item_availabilities").
		Where(squirrel.Eq{"pantry_item_id": ids}).
		OrderBy("pantry_item_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build availability query: %w", err)
	}

	var rows []availabilityRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]domain.PantryItemAvailability, len(ids))
	for _, row := range rows {
		from, err := parseDate(row.AvailableFrom)
		if err != nil {
			return nil, fmt.Errorf("available_from of item %s: %w", row.PantryItemID, err)
		}
		until, err := parseDate(row.AvailableUntil)
		if err != nil {
			return nil, fmt.Errorf("available_until of item %s: %w", row.PantryItemID, err)
		}
		out[row.PantryItemID] = append(out[row.PantryItemID], domain.PantryItemAvailability{
			AvailableFrom:  from,
			AvailableUntil: until,
		})
	}
	return out, nil
}

func (r *Repo) loadCustomFields(ctx context.Context, q postgres.Querier, ids []uuid.UUID) (map[uuid.UUID][]domain.PantryItemCustomField, error) {
	sql, args, err := postgres.Builder().
		Select("pantry_item_id", "key", "value").
		From("pantry_item_custom_fields").
		Where(squirrel.Eq{"pantry_item_id": ids}).
		OrderBy("pantry_item_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build custom field query: %w", err)
	}

	var rows []customFieldRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]domain.PantryItemCustomField, len(ids))
	for _, row := range rows {
		out[row.PantryItemID] = append(out[row.PantryItemID], domain.PantryItemCustomField{Key: row.Key, Value: row.Value})
	}
	return out, nil
}

func (r *Repo) loadCostMarkups(ctx context.Context, q postgres.Querier, partnerID string) ([]domain.PartnerCostMarkup, error) {
	var rows []markupRow
	if err := pgxscan.Select(ctx, q, &rows,
		`SELECT partner_id, applied_from, applied_until, markup_percent
		 FROM cost_markups WHERE partner_id = $1
		 ORDER BY applied_from NULLS FIRST, applied_until NULLS LAST`,
		partnerID,
	); err != nil {
		return nil, err
	}

	out := make([]domain.PartnerCostMarkup, 0, len(rows))
	for _, row := range rows {
		from, err := parseDate(row.AppliedFrom)
		if err != nil {
			return nil, fmt.Errorf("markup applied_from: %w", err)
		}
		until, err := parseDate(row.AppliedUntil)
		if err != nil {
			return nil, fmt.Errorf("markup applied_until: %w", err)
		}
		out = append(out, domain.PartnerCostMarkup{
			PartnerID:     row.PartnerID,
			AppliedFrom:   from,
			AppliedUntil:  until,
			MarkupPercent: row.MarkupPercent,
		})
	}
	return out, nil
}

// GetPantryItemDataSources returns the data source of every listed pantry
// item that exists. Every id must parse as a UUID; the first malformed id
// fails the call before the database is queried.
func (r *Repo) GetPantryItemDataSources(ctx context.Context, pantryItemIDs []string) (map[uuid.UUID]domain.PantryItemCulinaryIngredientSpecification, error) {
	ids := make([]uuid.UUID, len(pantryItemIDs))
	for i, raw := range pantryItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("pantry_item_ids[%d]", i), fmt.Sprintf("malformed id %q", raw))
		}
		ids[i] = id
	}

	out := make(map[uuid.UUID]domain.PantryItemCulinaryIngredientSpecification, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := postgres.Builder().
		Select(
			"pantry_item_id",
			"culops_culinary_ingredient_specification_id AS specification_id",
			"culops_culinary_ingredient_id AS culinary_ingredient_id",
		).
		From("pantry_item_data_sources").
		Where(squirrel.Eq{"pantry_item_id": ids}).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError(err, "build data source query")
	}

	var rows []dataSourceRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.WrapError(err, "get data sources of pantry items %v", ids)
	}

	for _, row := range rows {
		out[row.PantryItemID] = domain.PantryItemCulinaryIngredientSpecification{
			CulinaryIngredientSpecificationID: row.SpecificationID,
			CulinaryIngredientID:              row.CulinaryIngredientID,
		}
	}
	return out, nil
}

// GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID returns the
// pantry item produced by the given specification and culinary ingredient,
// taken from the newest pantry state that has one. It returns nil when no
// item matches both ids.
func (r *Repo) GetPantryItemDataByCulopsCulinaryIngredientAndSpecificationID(ctx context.Context, specificationID, culinaryIngredientID int64) (*domain.RecipePantryItemData, error) {
	var row struct {
		ID                uuid.UUID `db:"id"`
		IsPreppedAndReady bool      `db:"is_prepped_and_ready"`
	}

	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row,
		`SELECT i.id, i.is_prepped_and_ready
		 FROM pantry_items i
		 JOIN pantry_item_data_sources ds ON ds.pantry_item_id = i.id
		 JOIN pantry_states s ON s.id = i.pantry_state_id
		 WHERE ds.culops_culinary_ingredient_specification_id = $1
		   AND ds.culops_culinary_ingredient_id = $2
		 ORDER BY s.pantry_state_timestamp DESC, i.id
		 LIMIT 1`,
		specificationID, culinaryIngredientID,
	)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.WrapError(err, "get pantry item for specification %d and culinary ingredient %d", specificationID, culinaryIngredientID)
	}

	return &domain.RecipePantryItemData{PantryItemID: row.ID, IsPreppedAndReady: row.IsPreppedAndReady}, nil
}

// LatestPantryStateID returns the id of the partner's newest pantry state.
func (r *Repo) LatestPantryStateID(ctx context.Context, partnerID string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &id,
		`SELECT id FROM pantry_states WHERE partner_id = $1
		 ORDER BY pantry_state_timestamp DESC, id DESC LIMIT 1`,
		partnerID,
	)
	if pgxscan.NotFound(err) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, postgres.WrapError(err, "get latest pantry state for partner %s", partnerID)
	}
	return id, true, nil
}
