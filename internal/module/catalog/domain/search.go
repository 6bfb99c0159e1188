package domain

import (
	"fmt"
	"unicode/utf8"
)

const (
	// ShortQueryLength 以下の文字数の検索語は部分一致で検索します
	ShortQueryLength = 5

	// TrigramThreshold を超える類似度のフィールドが1つでもあれば一致とみなします
	TrigramThreshold = 0.3
)

// Field は検索対象のフィールドです
type Field string

const (
	FieldName           Field = "name"
	FieldBrand          Field = "brand"
	FieldCategory       Field = "category"
	FieldNutritionFacts Field = "nutrition_facts"
)

// TrigramFields はトライグラム類似度を計算するフィールド（優先順）です
var TrigramFields = []Field{FieldName, FieldBrand, FieldCategory}

// SubstringFields は部分一致検索の対象フィールドです
var SubstringFields = []Field{FieldName, FieldBrand, FieldCategory, FieldNutritionFacts}

// IsText はトライグラム類似度を計算できるテキストフィールドかどうかを返します
func (f Field) IsText() bool {
	switch f {
	case FieldName, FieldBrand, FieldCategory:
		return true
	default:
		return false
	}
}

// Strategy は選択された検索方式です
type Strategy string

const (
	StrategyAll       Strategy = "all"
	StrategySubstring Strategy = "substring"
	StrategyTrigram   Strategy = "trigram"
	// StrategyFallback はトライグラム検索が0件で部分一致に切り替えたことを表します
	StrategyFallback Strategy = "substring_fallback"
)

// SelectStrategy は検索語の長さから最初に試す検索方式を決定します
// 長さはUnicodeコードポイント数で数えます
func SelectStrategy(search string) Strategy {
	if search == "" {
		return StrategyAll
	}
	if utf8.RuneCountInString(search) <= ShortQueryLength {
		return StrategySubstring
	}
	return StrategyTrigram
}

// Window は取得範囲です。Limit が0の場合は上限なしです
type Window struct {
	Offset int
	Limit  int
}

// Unbounded は範囲指定なしかどうかを返します
func (w Window) Unbounded() bool {
	return w.Offset == 0 && w.Limit <= 0
}

// Validate は取得範囲が負の値を含まないことを検証します
func (w Window) Validate() error {
	if w.Offset < 0 || w.Limit < 0 {
		return fmt.Errorf("%w: negative window offset=%d limit=%d", ErrInvalidRequest, w.Offset, w.Limit)
	}
	return nil
}
