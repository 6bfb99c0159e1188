package pg

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// UUIDToPgtype converts uuid.UUID to pgtype.UUID
func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// PgtypeToUUID converts pgtype.UUID to uuid.UUID
func PgtypeToUUID(id pgtype.UUID) uuid.UUID {
	return id.Bytes
}

// WindowToLimit は取得範囲を LIMIT 句の値に変換します
// 上限なしの場合は NULL（LIMIT ALL）になります
func WindowToLimit(window domain.Window) pgtype.Int8 {
	if window.Limit <= 0 {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: int64(window.Limit), Valid: true}
}

// productRow は products テーブルの1行です
type productRow struct {
	ID             pgtype.UUID
	Name           string
	Brand          string
	Category       string
	NutritionFacts []byte
	CreatedAt      pgtype.Timestamptz
}

// scanTargets は productColumns の順でスキャン先を返します
func (r *productRow) scanTargets() []any {
	return []any{&r.ID, &r.Name, &r.Brand, &r.Category, &r.NutritionFacts, &r.CreatedAt}
}

func (r *productRow) toDomain() (*domain.Product, error) {
	facts, err := domain.ParseNutritionFacts(r.NutritionFacts)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", PgtypeToUUID(r.ID), err)
	}

	var createdAt time.Time
	if r.CreatedAt.Valid {
		createdAt = r.CreatedAt.Time
	}

	return &domain.Product{
		ID:             PgtypeToUUID(r.ID),
		Name:           r.Name,
		Brand:          r.Brand,
		Category:       r.Category,
		NutritionFacts: facts,
		CreatedAt:      createdAt,
	}, nil
}
