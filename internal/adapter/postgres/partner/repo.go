// Package partner reads per-partner catalogue configuration.
package partner

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// Repo provides partner configuration backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new partner repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// GetConfiguration returns the partner's plans, tags, brands and sales
// channels. It returns domain.ErrNotFound when the partner does not exist.
func (r *Repo) GetConfiguration(ctx context.Context, partnerID string) (*domain.PartnerConfiguration, error) {
	cfg := &domain.PartnerConfiguration{PartnerID: partnerID}

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		err := pgxscan.Get(ctx, q, &cfg.Name, `SELECT name FROM partners WHERE id = $1`, partnerID)
		if pgxscan.NotFound(err) {
			return fmt.Errorf("partner %s: %w", partnerID, domain.ErrNotFound)
		}
		if err != nil {
			return err
		}

		lists := []struct {
			dst *[]string
			sql string
		}{
			{&cfg.RecipePlans, `SELECT plan_name FROM partner_recipe_plans WHERE partner_id = $1 ORDER BY plan_name`},
			{&cfg.PackagingConfigurationTags, `SELECT tag FROM partner_packaging_configuration_tags WHERE partner_id = $1 ORDER BY tag`},
			{&cfg.RecipeConstraintTags, `SELECT tag FROM partner_recipe_constraint_tags WHERE partner_id = $1 ORDER BY tag`},
			{&cfg.Brands, `SELECT brand FROM partner_brands WHERE partner_id = $1 ORDER BY brand`},
			{&cfg.SalesChannels, `SELECT sales_channel FROM partner_sales_channels WHERE partner_id = $1 ORDER BY sales_channel`},
		}
		for _, l := range lists {
			if err := pgxscan.Select(ctx, q, l.dst, l.sql, partnerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, postgres.WrapError(err, "get configuration of partner %s", partnerID)
	}
	return cfg, nil
}
