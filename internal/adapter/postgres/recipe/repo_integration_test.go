package recipe_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres/recipe"
	"github.com/heartmarshall/culops-pantry/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

func TestRecipeRepo_Integration_SaveAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := recipe.New(pool, postgres.NewTxManager(pool))
	ctx := context.Background()

	partnerID := testhelper.SeedPartner(t, pool)
	cycle := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	other := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	a := domain.ClassifiedRecipe{
		CulopsRecipe: domain.CulopsRecipe{
			Recipe: domain.Recipe{
				RecipeID: uuid.New(), PartnerID: partnerID, Title: "Stew", Servings: 4, CycleDate: &cycle,
				RecipeConstraintTags: []string{"gluten_free"},
			},
			CulopsRecipeID:      101,
			RecipeSlotShortCode: "A1",
		},
		Plan: domain.PlanFamily,
	}
	b := domain.ClassifiedRecipe{
		CulopsRecipe: domain.CulopsRecipe{
			Recipe:         domain.Recipe{RecipeID: uuid.New(), PartnerID: partnerID, Title: "Cookie", AddOn: true, CycleDate: &other},
			CulopsRecipeID: 102,
		},
		Plan: domain.PlanAddOn,
	}

	require.NoError(t, repo.SaveRecipes(ctx, partnerID, []domain.ClassifiedRecipe{a, b}))

	ids, err := repo.GetRecipeIDsByCulopsIDs(ctx, partnerID, []int64{101, 102, 999})
	require.NoError(t, err)
	assert.Equal(t, map[int64]uuid.UUID{101: a.RecipeID, 102: b.RecipeID}, ids)

	all, err := repo.ListRecipes(ctx, partnerID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.RecipeID, all[0].RecipeID)
	assert.Equal(t, domain.PlanFamily, all[0].Plan)
	assert.Equal(t, []string{"gluten_free"}, all[0].RecipeConstraintTags)
	assert.Equal(t, int64(101), all[0].CulopsRecipeID)

	filtered, err := repo.ListRecipes(ctx, partnerID, &other)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, b.RecipeID, filtered[0].RecipeID)
	assert.True(t, filtered[0].AddOn)
}

func TestRecipeRepo_Integration_UpsertKeepsMapping(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := recipe.New(pool, postgres.NewTxManager(pool))
	ctx := context.Background()

	partnerID := testhelper.SeedPartner(t, pool)
	r := domain.ClassifiedRecipe{
		CulopsRecipe: domain.CulopsRecipe{
			Recipe:         domain.Recipe{RecipeID: uuid.New(), PartnerID: partnerID, Title: "Soup", Servings: 2},
			CulopsRecipeID: 55,
		},
		Plan: domain.PlanTwoServing,
	}
	require.NoError(t, repo.SaveRecipes(ctx, partnerID, []domain.ClassifiedRecipe{r}))

	r.Title = "Soup v2"
	r.Servings = 4
	r.Plan = domain.PlanFamily
	require.NoError(t, repo.SaveRecipes(ctx, partnerID, []domain.ClassifiedRecipe{r}))

	got, err := repo.ListRecipes(ctx, partnerID, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Soup v2", got[0].Title)
	assert.Equal(t, domain.PlanFamily, got[0].Plan)
	assert.Equal(t, 1, testhelper.CountRows(t, pool, "recipe_data_sources", "partner_id = $1", partnerID))
}

func TestRecipeRepo_Integration_DuplicateCulopsIDRollsBack(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := recipe.New(pool, postgres.NewTxManager(pool))
	ctx := context.Background()

	partnerID := testhelper.SeedPartner(t, pool)
	existing := domain.ClassifiedRecipe{
		CulopsRecipe: domain.CulopsRecipe{
			Recipe:         domain.Recipe{RecipeID: uuid.New(), PartnerID: partnerID, Title: "Pie"},
			CulopsRecipeID: 7,
		},
		Plan: domain.PlanStandard,
	}
	require.NoError(t, repo.SaveRecipes(ctx, partnerID, []domain.ClassifiedRecipe{existing}))

	clash := existing
	clash.RecipeID = uuid.New()
	err := repo.SaveRecipes(ctx, partnerID, []domain.ClassifiedRecipe{clash})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)

	assert.Equal(t, 1, testhelper.CountRows(t, pool, "recipes", "partner_id = $1", partnerID))
}
