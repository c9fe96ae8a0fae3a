package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedPartner creates a partner row and returns its id.
func SeedPartner(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := "partner-" + UniqueSuffix()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO partners (id, name) VALUES ($1, $2)`,
		id, "Test Partner "+id,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPartner: %v", err)
	}
	return id
}

// SeedAssembly creates an assembly mapped to culopsAssemblyID. When deleted is
// true the assembly is soft-deleted.
func SeedAssembly(t *testing.T, pool *pgxpool.Pool, partnerID string, culopsAssemblyID int64, deleted bool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	var deletedAt *time.Time
	if deleted {
		now := time.Now().UTC()
		deletedAt = &now
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO assemblies (id, partner_id, deleted_at) VALUES ($1, $2, $3)`,
		id, partnerID, deletedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAssembly insert assembly: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO assembly_data_sources (assembly_id, partner_id, culops_assembly_id) VALUES ($1, $2, $3)`,
		id, partnerID, culopsAssemblyID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAssembly insert data source: %v", err)
	}

	return id
}

// SeedPartnerPlans allows the given plan names for a partner.
func SeedPartnerPlans(t *testing.T, pool *pgxpool.Pool, partnerID string, plans ...string) {
	t.Helper()

	for _, p := range plans {
		_, err := pool.Exec(context.Background(),
			`INSERT INTO partner_recipe_plans (partner_id, plan_name) VALUES ($1, $2)`,
			partnerID, p,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedPartnerPlans: %v", err)
		}
	}
}

// CountRows returns the number of rows in table matching the optional where clause.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	sql := "SELECT count(*) FROM " + table
	if where != "" {
		sql += " WHERE " + where
	}

	var n int
	if err := pool.QueryRow(context.Background(), sql, args...).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
