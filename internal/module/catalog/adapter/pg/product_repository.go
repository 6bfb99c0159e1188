package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jinford/catalog/internal/module/catalog/domain"
)

const pgErrCodeUndefinedFunction = "42883"

// ProductRepository は PostgreSQL (pg_trgm) 上の商品ストアアダプターです
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository は新しい商品リポジトリを作成します
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// GetByID はIDで商品を取得します
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var row productRow
	if err := r.pool.QueryRow(ctx, query, UUIDToPgtype(id)).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return row.toDomain()
}

// Ping はデータベースへの疎通を確認します
func (r *ProductRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// ListAll は全商品をデフォルト順で返します
func (r *ProductRepository) ListAll(ctx context.Context, window domain.Window) (*domain.ProductSet, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY ` + defaultOrder + ` LIMIT $1 OFFSET $2`

	products, err := r.queryProducts(ctx, query, WindowToLimit(window), window.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := r.count(ctx, `SELECT count(*) FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &domain.ProductSet{Products: products, Total: total}, nil
}

// SubstringSearch は ILIKE による部分一致で検索します
// nutrition_facts は jsonb::text に変換して比較します
func (r *ProductRepository) SubstringSearch(ctx context.Context, fields []domain.Field, needle string, window domain.Window) (*domain.ProductSet, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	predicate, err := substringPredicate(fields)
	if err != nil {
		return nil, err
	}
	pattern := likePattern(needle)

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + predicate +
		` ORDER BY ` + defaultOrder + ` LIMIT $2 OFFSET $3`

	products, err := r.queryProducts(ctx, query, pattern, WindowToLimit(window), window.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by substring: %w", err)
	}

	total, err := r.count(ctx, `SELECT count(*) FROM products WHERE `+predicate, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to count substring matches: %w", err)
	}

	return &domain.ProductSet{Products: products, Total: total}, nil
}

// TrigramSearch は pg_trgm の similarity() で検索します
func (r *ProductRepository) TrigramSearch(ctx context.Context, fields []domain.Field, needle string, threshold float64, window domain.Window) (*domain.ScoredProductSet, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	selectSQL, countSQL, err := trigramQueries(fields)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, selectSQL, needle, threshold, WindowToLimit(window), window.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by similarity: %w", classify(err))
	}
	defer rows.Close()

	products := make([]*domain.ScoredProduct, 0)
	for rows.Next() {
		var row productRow
		scores := make([]float32, len(fields))
		targets := row.scanTargets()
		for i := range scores {
			targets = append(targets, &scores[i])
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan scored product: %w", err)
		}

		product, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		similarity := make(map[domain.Field]float64, len(fields))
		for i, f := range fields {
			similarity[f] = float64(scores[i])
		}
		products = append(products, &domain.ScoredProduct{Product: product, Similarity: similarity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scored products: %w", classify(err))
	}

	total, err := r.count(ctx, countSQL, needle, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to count similarity matches: %w", classify(err))
	}

	return &domain.ScoredProductSet{Products: products, Total: total}, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var row productRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return int(total), nil
}

// classify は pg_trgm 未導入のエラーに対処方法を付け加えます
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUndefinedFunction {
		return fmt.Errorf("similarity() is undefined, run `catalog db migrate` to install pg_trgm: %w", err)
	}
	return err
}
