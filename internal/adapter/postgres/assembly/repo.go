// Package assembly implements the assembly identifier mapping store. An
// assembly is a parent row in assemblies plus one child row in
// assembly_data_sources carrying the culops assembly id.
package assembly

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// Repo provides assembly mapping persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new assembly repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

type mappingRow struct {
	AssemblyID       uuid.UUID `db:"assembly_id"`
	CulopsAssemblyID int64     `db:"culops_assembly_id"`
	Deleted          bool      `db:"deleted"`
}

// GetMappedCulopsAssemblyIDs returns one mapping per distinct id in
// assemblyIDs, in first-occurrence order. Ids without a mapping under
// partnerID are reported with a nil CulopsAssemblyID and Deleted=false.
func (r *Repo) GetMappedCulopsAssemblyIDs(ctx context.Context, partnerID string, assemblyIDs []uuid.UUID) ([]domain.AssemblyIDMapping, error) {
	if len(assemblyIDs) == 0 {
		return nil, domain.NewValidationError("assembly_ids", "must not be empty")
	}

	ids := distinct(assemblyIDs)

	query := postgres.Builder().
		Select("a.id AS assembly_id", "d.culops_assembly_id", "a.deleted_at IS NOT NULL AS deleted").
		From("assemblies a").
		Join("assembly_data_sources d ON d.assembly_id = a.id").
		Where(squirrel.Eq{"a.partner_id": partnerID}).
		Where(squirrel.Eq{"a.id": ids})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, postgres.WrapError(err, "build mapping query for assemblies %v", ids)
	}

	var rows []mappingRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.WrapError(err, "get mapped culops assembly ids for partner %s assemblies %v", partnerID, ids)
	}

	found := make(map[uuid.UUID]mappingRow, len(rows))
	for _, row := range rows {
		found[row.AssemblyID] = row
	}

	out := make([]domain.AssemblyIDMapping, 0, len(ids))
	for _, id := range ids {
		row, ok := found[id]
		if !ok {
			out = append(out, domain.AssemblyIDMapping{AssemblyID: id})
			continue
		}
		culopsID := row.CulopsAssemblyID
		out = append(out, domain.AssemblyIDMapping{
			AssemblyID:       id,
			CulopsAssemblyID: &culopsID,
			Deleted:          row.Deleted,
		})
	}
	return out, nil
}

// AddAssembly inserts the assembly and its culops mapping in one transaction.
func (r *Repo) AddAssembly(ctx context.Context, partnerID string, assemblyID uuid.UUID, culopsAssemblyID int64) error {
	var errs []domain.FieldError
	if partnerID == "" {
		errs = append(errs, domain.FieldError{Field: "partner_id", Message: "required"})
	}
	if assemblyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assembly_id", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		if _, err := q.Exec(ctx,
			`INSERT INTO assemblies (id, partner_id) VALUES ($1, $2)`,
			assemblyID, partnerID,
		); err != nil {
			return err
		}

		_, err := q.Exec(ctx,
			`INSERT INTO assembly_data_sources (assembly_id, partner_id, culops_assembly_id) VALUES ($1, $2, $3)`,
			assemblyID, partnerID, culopsAssemblyID,
		)
		return err
	})
	return postgres.WrapError(err, "add assembly %s with culops assembly %d", assemblyID, culopsAssemblyID)
}

// DeleteAssembly removes the assembly; its mapping row goes with it via
// ON DELETE CASCADE. Deleting an unknown id is not an error.
func (r *Repo) DeleteAssembly(ctx context.Context, partnerID string, assemblyID uuid.UUID) error {
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`DELETE FROM assemblies WHERE id = $1 AND partner_id = $2`,
		assemblyID, partnerID,
	)
	return postgres.WrapError(err, "delete assembly %s for partner %s", assemblyID, partnerID)
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
