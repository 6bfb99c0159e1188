package pg

import (
	"fmt"
	"strings"

	"github.com/jinford/catalog/internal/module/catalog/domain"
)

const (
	productColumns = "id, name, brand, category, nutrition_facts, created_at"
	defaultOrder   = "created_at, id"
)

// columnExpr は検索フィールドに対応するSQL式です
// ここに無いフィールドはSQLに埋め込みません
var columnExpr = map[domain.Field]string{
	domain.FieldName:           "name",
	domain.FieldBrand:          "brand",
	domain.FieldCategory:       "category",
	domain.FieldNutritionFacts: "nutrition_facts::text",
}

// likePattern は needle を ILIKE の部分一致パターンに変換します
// ワイルドカード文字とエスケープ文字はリテラルとして扱います
func likePattern(needle string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(needle) + "%"
}

// substringPredicate は fields のいずれかが $1 に ILIKE で一致する条件式を返します
func substringPredicate(fields []domain.Field) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: no fields", domain.ErrUnsupportedField)
	}

	conds := make([]string, 0, len(fields))
	for _, f := range fields {
		expr, ok := columnExpr[f]
		if !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedField, f)
		}
		conds = append(conds, expr+" ILIKE $1")
	}
	return strings.Join(conds, " OR "), nil
}

// trigramQueries はトライグラム検索の SELECT 文と COUNT 文を組み立てます
//
// $1 が検索語、$2 が閾値です。SELECT 文は $3 を LIMIT、$4 を OFFSET に使います。
// similarity() は real を返すため、閾値は double precision として比較します。
func trigramQueries(fields []domain.Field) (selectSQL, countSQL string, err error) {
	if len(fields) == 0 {
		return "", "", fmt.Errorf("%w: no fields", domain.ErrUnsupportedField)
	}

	scores := make([]string, 0, len(fields))
	aliases := make([]string, 0, len(fields))
	conds := make([]string, 0, len(fields))
	order := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		if !f.IsText() {
			return "", "", fmt.Errorf("%w: %s", domain.ErrUnsupportedField, f)
		}
		alias := string(f) + "_similarity"
		scores = append(scores, fmt.Sprintf("similarity(%s, $1) AS %s", columnExpr[f], alias))
		aliases = append(aliases, alias)
		conds = append(conds, alias+" > $2::double precision")
		order = append(order, alias+" DESC")
	}
	order = append(order, defaultOrder)

	scored := fmt.Sprintf("SELECT %s, %s FROM products", productColumns, strings.Join(scores, ", "))
	where := strings.Join(conds, " OR ")

	selectSQL = fmt.Sprintf(
		"SELECT %s, %s FROM (%s) AS scored WHERE %s ORDER BY %s LIMIT $3 OFFSET $4",
		productColumns, strings.Join(aliases, ", "), scored, where, strings.Join(order, ", "),
	)
	countSQL = fmt.Sprintf("SELECT count(*) FROM (%s) AS scored WHERE %s", scored, where)
	return selectSQL, countSQL, nil
}
