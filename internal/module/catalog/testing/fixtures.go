package testing

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// TestProduct はテスト用のProductを生成します
func TestProduct(name, brand, category string, facts domain.NutritionFacts) *domain.Product {
	return &domain.Product{
		ID:             uuid.New(),
		Name:           name,
		Brand:          brand,
		Category:       category,
		NutritionFacts: facts,
		CreatedAt:      time.Now(),
	}
}

// SampleCatalog は検索シナリオ用の商品一覧を返します
// ID と作成日時は未設定で、ストア側で割り当てられます。並び順がデフォルト順になります。
func SampleCatalog() []*domain.Product {
	return []*domain.Product{
		{
			Name:     "Cola Fizz",
			Brand:    "Fizzco",
			Category: "Beverages",
			NutritionFacts: domain.NutritionFacts{
				"sugar":    domain.Number("39"),
				"calories": domain.Number("140"),
			},
		},
		{
			Name:     "Classic Soda",
			Brand:    "Coca-Cola",
			Category: "Soft Drinks",
			NutritionFacts: domain.NutritionFacts{
				"sugar": domain.Number("35"),
			},
		},
		{
			Name:     "Oat Flakes",
			Brand:    "Morning Mills",
			Category: "Breakfast Cereals",
			NutritionFacts: domain.NutritionFacts{
				"fiber":    domain.Number("4"),
				"calories": domain.Number("110"),
			},
		},
		{
			Name:     "Breakfast Cereal Bar",
			Brand:    "Granola Co",
			Category: "Snacks",
			NutritionFacts: domain.NutritionFacts{
				"protein": domain.Text("3g"),
			},
		},
		{
			Name:     "Salted Crackers",
			Brand:    "Crunchy",
			Category: "Snacks",
			NutritionFacts: domain.NutritionFacts{
				"sodium": domain.Text("180mg"),
			},
		},
		{
			Name:     "Sparkling Water",
			Brand:    "Aqua",
			Category: "Beverages",
		},
		{
			Name:     "Real Tea",
			Brand:    "Leafy",
			Category: "Beverages",
			NutritionFacts: domain.NutritionFacts{
				"caffeine": domain.Text("15mg"),
			},
		},
	}
}

// SampleCatalogNames は SampleCatalog の商品名をデフォルト順で返します
func SampleCatalogNames() []string {
	catalog := SampleCatalog()
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}
	return names
}
