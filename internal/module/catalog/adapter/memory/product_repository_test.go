package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jinford/catalog/internal/module/catalog/adapter/memory"
	"github.com/jinford/catalog/internal/module/catalog/domain"
	testutil "github.com/jinford/catalog/internal/module/catalog/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestProductRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(testutil.SampleCatalog())

	all, err := repo.ListAll(ctx, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, len(testutil.SampleCatalog()), all.Total)
	assert.Equal(t, testutil.SampleCatalogNames(), names(all.Products))

	page, err := repo.ListAll(ctx, domain.Window{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, all.Total, page.Total)
	assert.Equal(t, testutil.SampleCatalogNames()[2:4], names(page.Products))

	beyond, err := repo.ListAll(ctx, domain.Window{Offset: 100, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Products)
	assert.Equal(t, all.Total, beyond.Total)
}

func TestProductRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(testutil.SampleCatalog())

	all, err := repo.ListAll(ctx, domain.Window{})
	require.NoError(t, err)
	want := all.Products[1]

	got, err := repo.GetByID(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_SubstringSearch(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(testutil.SampleCatalog())

	tests := []struct {
		name   string
		needle string
		want   []string
	}{
		{
			name:   "matches name and brand case-insensitively",
			needle: "cola",
			want:   []string{"Cola Fizz", "Classic Soda"},
		},
		{
			name:   "matches nutrition facts text",
			needle: "sodiu",
			want:   []string{"Salted Crackers"},
		},
		{
			name:   "matches nutrition facts value",
			needle: "39",
			want:   []string{"Cola Fizz"},
		},
		{
			name:   "no match",
			needle: "zzzz",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.SubstringSearch(ctx, domain.SubstringFields, tt.needle, domain.Window{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got.Products))
			assert.Equal(t, len(tt.want), got.Total)
		})
	}
}

func TestProductRepository_TrigramSearch(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(testutil.SampleCatalog())

	got, err := repo.TrigramSearch(ctx, domain.TrigramFields, "breakfast cereal", domain.TrigramThreshold, domain.Window{})
	require.NoError(t, err)
	require.NotEmpty(t, got.Products)

	// name similarity ranks first, category matches follow
	assert.Equal(t, "Breakfast Cereal Bar", got.Products[0].Name)
	for _, p := range got.Products {
		hit := false
		for _, f := range domain.TrigramFields {
			if p.Similarity[f] > domain.TrigramThreshold {
				hit = true
			}
		}
		assert.True(t, hit, p.Name)
	}
	for i := 1; i < len(got.Products); i++ {
		assert.GreaterOrEqual(t, got.Products[i-1].Similarity[domain.FieldName], got.Products[i].Similarity[domain.FieldName])
	}
}

func TestProductRepository_TrigramSearch_RejectsNutritionFacts(t *testing.T) {
	repo := memory.NewProductRepository(testutil.SampleCatalog())

	_, err := repo.TrigramSearch(context.Background(), domain.SubstringFields, "sodium", domain.TrigramThreshold, domain.Window{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedField)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Cola Fizz", "brand": "Fizzco", "category": "Beverages", "nutrition_facts": {"sugar": 39}},
		{"name": "Oat Flakes", "brand": "Morning", "category": "Breakfast Cereals", "nutrition_facts": null}
	]`), 0o600))

	repo, err := memory.LoadFile(path)
	require.NoError(t, err)

	all, err := repo.ListAll(context.Background(), domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cola Fizz", "Oat Flakes"}, names(all.Products))
	assert.Nil(t, all.Products[1].NutritionFacts)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"name": "No Brand", "category": "Misc"}]`), 0o600))
	_, err = memory.LoadFile(bad)
	assert.Error(t, err)
}

func TestProductRepository_RejectsNegativeWindow(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(testutil.SampleCatalog())
	window := domain.Window{Offset: -20, Limit: 10}

	_, err := repo.ListAll(ctx, window)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = repo.SubstringSearch(ctx, domain.SubstringFields, "cola", window)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = repo.TrigramSearch(ctx, domain.TrigramFields, "breakfast cereal", domain.TrigramThreshold, window)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestProductRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(testutil.SampleCatalog())

	all, err := repo.ListAll(ctx, domain.Window{})
	require.NoError(t, err)
	first := all.Products[0]
	first.Name = "Mutated"
	all.Products[1] = nil

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleCatalogNames()[0], got.Name)
	got.Brand = "Mutated"
	for key := range got.NutritionFacts {
		delete(got.NutritionFacts, key)
	}

	again, err := repo.ListAll(ctx, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleCatalogNames(), names(again.Products))
	assert.NotEqual(t, "Mutated", again.Products[0].Brand)
	assert.Equal(t, testutil.SampleCatalog()[0].NutritionFacts.CanonicalText(), again.Products[0].NutritionFacts.CanonicalText())
}
