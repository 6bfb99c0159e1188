package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// ProductRepository はプロセス内に商品を保持するストアです
// PostgreSQL アダプターと同じ並び順・一致規則で検索します
type ProductRepository struct {
	mu       sync.RWMutex
	products []*domain.Product
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository は商品一覧からストアを作成します
// ID または作成日時が未設定の商品にはストア側で値を割り当てます
func NewProductRepository(products []*domain.Product) *ProductRepository {
	now := time.Now().UTC()
	stored := make([]*domain.Product, 0, len(products))
	for i, p := range products {
		cp := clone(p)
		if cp.ID == uuid.Nil {
			cp.ID = uuid.New()
		}
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		stored = append(stored, cp)
	}

	sort.SliceStable(stored, func(i, j int) bool {
		return defaultLess(stored[i], stored[j])
	})

	return &ProductRepository{products: stored}
}

// LoadFile はJSON配列の商品ファイルからストアを作成します
func LoadFile(path string) (*ProductRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	for i, p := range products {
		if p.Name == "" || p.Brand == "" || p.Category == "" {
			return nil, fmt.Errorf("seed product %d: name, brand and category are required", i)
		}
	}

	return NewProductRepository(products), nil
}

// defaultLess は作成日時、IDの順で比較します
func defaultLess(a, b *domain.Product) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

// GetByID はIDで商品を取得します
func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return clone(p), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

// Ping は常に成功します
func (r *ProductRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ListAll は全商品を返します
func (r *ProductRepository) ListAll(_ context.Context, window domain.Window) (*domain.ProductSet, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return &domain.ProductSet{
		Products: cloneAll(slice(r.products, window)),
		Total:    len(r.products),
	}, nil
}

// SubstringSearch は大文字小文字を区別しない部分一致で検索します
func (r *ProductRepository) SubstringSearch(_ context.Context, fields []domain.Field, needle string, window domain.Window) (*domain.ProductSet, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	lowered := strings.ToLower(needle)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Product, 0)
	for _, p := range r.products {
		for _, f := range fields {
			value, ok := p.FieldValue(f)
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(value), lowered) {
				matched = append(matched, p)
				break
			}
		}
	}

	return &domain.ProductSet{
		Products: cloneAll(slice(matched, window)),
		Total:    len(matched),
	}, nil
}

// TrigramSearch はトライグラム類似度で検索し、fields の順に類似度の降順で並べます
func (r *ProductRepository) TrigramSearch(_ context.Context, fields []domain.Field, needle string, threshold float64, window domain.Window) (*domain.ScoredProductSet, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	for _, f := range fields {
		if !f.IsText() {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedField, f)
		}
	}

	query := Trigrams(needle)

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		product *domain.Product
		scores  []float32
	}

	matched := make([]scored, 0)
	for _, p := range r.products {
		scores := make([]float32, len(fields))
		hit := false
		for i, f := range fields {
			value, _ := p.FieldValue(f)
			scores[i] = similarity(Trigrams(value), query)
			// PostgreSQL は real を double に拡張して比較する
			if float64(scores[i]) > threshold {
				hit = true
			}
		}
		if hit {
			matched = append(matched, scored{product: p, scores: scores})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		for k := range fields {
			if matched[i].scores[k] != matched[j].scores[k] {
				return matched[i].scores[k] > matched[j].scores[k]
			}
		}
		return false
	})

	page := slice(matched, window)
	results := make([]*domain.ScoredProduct, 0, len(page))
	for _, m := range page {
		sim := make(map[domain.Field]float64, len(fields))
		for k, f := range fields {
			sim[f] = float64(m.scores[k])
		}
		results = append(results, &domain.ScoredProduct{Product: clone(m.product), Similarity: sim})
	}

	return &domain.ScoredProductSet{
		Products: results,
		Total:    len(matched),
	}, nil
}

// slice は window の範囲を返します。window は検証済みであること
func slice[T any](items []T, window domain.Window) []T {
	if window.Unbounded() {
		return items
	}
	if window.Offset < 0 || window.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if window.Limit > 0 && window.Offset+window.Limit < end {
		end = window.Offset + window.Limit
	}
	return items[window.Offset:end]
}

// clone は栄養成分を含めた商品のコピーを返します
func clone(p *domain.Product) *domain.Product {
	cp := *p
	cp.NutritionFacts = maps.Clone(p.NutritionFacts)
	return &cp
}

func cloneAll(products []*domain.Product) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, clone(p))
	}
	return out
}
