package domain

import (
	"time"

	"github.com/google/uuid"
)

// === Product集約 ===

// Product はカタログに登録された商品を表します
// Name/Brand/Category は必須、NutritionFacts は任意です
type Product struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Category       string         `json:"category"`
	NutritionFacts NutritionFacts `json:"nutrition_facts"`
	CreatedAt      time.Time      `json:"-"`
}

// FieldValue は検索対象フィールドのテキスト値を返します
// NutritionFacts は正規化テキストを返し、未設定の場合は ok=false になります
func (p *Product) FieldValue(field Field) (value string, ok bool) {
	switch field {
	case FieldName:
		return p.Name, true
	case FieldBrand:
		return p.Brand, true
	case FieldCategory:
		return p.Category, true
	case FieldNutritionFacts:
		if p.NutritionFacts == nil {
			return "", false
		}
		return p.NutritionFacts.CanonicalText(), true
	default:
		return "", false
	}
}

// String は "name (brand)" 形式の表示名を返します
func (p *Product) String() string {
	return p.Name + " (" + p.Brand + ")"
}

// ProductSet はページ単位の検索結果と全件数を保持します
type ProductSet struct {
	Products []*Product
	Total    int
}

// ScoredProduct はトライグラム類似度付きの商品です
type ScoredProduct struct {
	*Product
	Similarity map[Field]float64
}

// ScoredProductSet は類似度付きの検索結果と全件数を保持します
type ScoredProductSet struct {
	Products []*ScoredProduct
	Total    int
}

// Unscored は類似度を取り除いた ProductSet を返します
func (s *ScoredProductSet) Unscored() *ProductSet {
	products := make([]*Product, 0, len(s.Products))
	for _, sp := range s.Products {
		products = append(products, sp.Product)
	}
	return &ProductSet{Products: products, Total: s.Total}
}
