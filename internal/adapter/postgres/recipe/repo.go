// Package recipe persists classified culops recipes and their mapping to
// local recipe ids.
package recipe

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

// Repo provides recipe persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new recipe repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// GetRecipeIDsByCulopsIDs maps the culops recipe ids already known for
// partnerID to their local recipe ids. Unknown ids are absent from the map.
func (r *Repo) GetRecipeIDsByCulopsIDs(ctx context.Context, partnerID string, culopsIDs []int64) (map[int64]uuid.UUID, error) {
	out := make(map[int64]uuid.UUID, len(culopsIDs))
	if len(culopsIDs) == 0 {
		return out, nil
	}

	sql, args, err := postgres.Builder().
		Select("culops_recipe_id", "recipe_id").
		From("recipe_data_sources").
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"culops_recipe_id": culopsIDs}).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError(err, "build recipe mapping query")
	}

	var rows []struct {
		CulopsRecipeID int64     `db:"culops_recipe_id"`
		RecipeID       uuid.UUID `db:"recipe_id"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.WrapError(err, "get recipe ids of partner %s for culops recipes %v", partnerID, culopsIDs)
	}

	for _, row := range rows {
		out[row.CulopsRecipeID] = row.RecipeID
	}
	return out, nil
}

// SaveRecipes upserts recipes and inserts their culops mapping in one
// transaction. Every recipe must belong to partnerID and carry a local id.
func (r *Repo) SaveRecipes(ctx context.Context, partnerID string, recipes []domain.ClassifiedRecipe) error {
	var errs []domain.FieldError
	for i, rec := range recipes {
		if rec.RecipeID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("recipes[%d].recipe_id", i), Message: "required"})
		}
		if rec.PartnerID != partnerID {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("recipes[%d].partner_id", i), Message: "must match " + partnerID})
		}
		if rec.Plan == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("recipes[%d].plan", i), Message: "required"})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	if len(recipes) == 0 {
		return nil
	}

	recipesQ := postgres.Builder().Insert("recipes").
		Columns(
			"id", "partner_id", "title", "subtitle", "add_on", "cycle_date", "servings", "plan_name",
			"recipe_slot_plan", "recipe_slot_short_code", "recipe_constraint_tags", "packaging_configuration_tags", "deleted_at",
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, subtitle = EXCLUDED.subtitle, add_on = EXCLUDED.add_on,
			cycle_date = EXCLUDED.cycle_date, servings = EXCLUDED.servings, plan_name = EXCLUDED.plan_name,
			recipe_slot_plan = EXCLUDED.recipe_slot_plan, recipe_slot_short_code = EXCLUDED.recipe_slot_short_code,
			recipe_constraint_tags = EXCLUDED.recipe_constraint_tags,
			packaging_configuration_tags = EXCLUDED.packaging_configuration_tags,
			deleted_at = EXCLUDED.deleted_at, updated_at = now()`)
	sourcesQ := postgres.Builder().Insert("recipe_data_sources").
		Columns("recipe_id", "partner_id", "culops_recipe_id").
		Suffix("ON CONFLICT (recipe_id) DO NOTHING")

	for _, rec := range recipes {
		recipesQ = recipesQ.Values(
			rec.RecipeID, partnerID, rec.Title, rec.Subtitle, rec.AddOn, rec.CycleDate, rec.Servings, string(rec.Plan),
			rec.RecipeSlotPlan, rec.RecipeSlotShortCode,
			nonNil(rec.RecipeConstraintTags), nonNil(rec.PackagingConfigurationTags), rec.DeletedAt,
		)
		sourcesQ = sourcesQ.Values(rec.RecipeID, partnerID, rec.CulopsRecipeID)
	}

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		for _, stmt := range []squirrel.Sqlizer{recipesQ, sourcesQ} {
			sql, args, err := stmt.ToSql()
			if err != nil {
				return err
			}
			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}
		return nil
	})
	return postgres.WrapError(err, "save %d recipes for partner %s", len(recipes), partnerID)
}

type recipeRow struct {
	ID                         uuid.UUID  `db:"id"`
	PartnerID                  string     `db:"partner_id"`
	Title                      string     `db:"title"`
	Subtitle                   string     `db:"subtitle"`
	AddOn                      bool       `db:"add_on"`
	CycleDate                  *time.Time `db:"cycle_date"`
	Servings                   int32      `db:"servings"`
	PlanName                   string     `db:"plan_name"`
	RecipeSlotPlan             string     `db:"recipe_slot_plan"`
	RecipeSlotShortCode        string     `db:"recipe_slot_short_code"`
	RecipeConstraintTags       []string   `db:"recipe_constraint_tags"`
	PackagingConfigurationTags []string   `db:"packaging_configuration_tags"`
	DeletedAt                  *time.Time `db:"deleted_at"`
	CulopsRecipeID             int64      `db:"culops_recipe_id"`
}

// ListRecipes returns the partner's stored recipes, optionally restricted to
// one cycle date, ordered by cycle date and slot.
func (r *Repo) ListRecipes(ctx context.Context, partnerID string, cycleDate *time.Time) ([]domain.ClassifiedRecipe, error) {
	query := postgres.Builder().
		Select(
			"r.id", "r.partner_id", "r.title", "r.subtitle", "r.add_on", "r.cycle_date", "r.servings", "r.plan_name",
			"r.recipe_slot_plan", "r.recipe_slot_short_code", "r.recipe_constraint_tags", "r.packaging_configuration_tags",
			"r.deleted_at", "ds.culops_recipe_id",
		).
		From("recipes r").
		Join("recipe_data_sources ds ON ds.recipe_id = r.id").
		Where(squirrel.Eq{"r.partner_id": partnerID}).
		OrderBy("r.cycle_date", "r.recipe_slot_short_code", "r.id")
	if cycleDate != nil {
		query = query.Where("r.cycle_date = ?", *cycleDate)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.WrapError(err, "build recipe list query")
	}

	var rows []recipeRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.WrapError(err, "list recipes of partner %s", partnerID)
	}

	out := make([]domain.ClassifiedRecipe, len(rows))
	for i, row := range rows {
		out[i] = domain.ClassifiedRecipe{
			CulopsRecipe: domain.CulopsRecipe{
				Recipe: domain.Recipe{
					RecipeID:                   row.ID,
					PartnerID:                  row.PartnerID,
					Title:                      row.Title,
					Subtitle:                   row.Subtitle,
					AddOn:                      row.AddOn,
					CycleDate:                  row.CycleDate,
					Servings:                   int(row.Servings),
					RecipeConstraintTags:       row.RecipeConstraintTags,
					PackagingConfigurationTags: row.PackagingConfigurationTags,
					DeletedAt:                  row.DeletedAt,
				},
				CulopsRecipeID:      row.CulopsRecipeID,
				RecipeSlotPlan:      row.RecipeSlotPlan,
				RecipeSlotShortCode: row.RecipeSlotShortCode,
			},
			Plan: domain.PlanLabel(row.PlanName),
		}
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
