package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest はクライアント起因の不正なパラメータを表します
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPageOutOfRange は存在しないページが要求されたことを表します
	ErrPageOutOfRange = fmt.Errorf("%w: invalid page", ErrInvalidRequest)

	// ErrProductNotFound は商品が存在しないことを表します
	ErrProductNotFound = errors.New("product not found")

	// ErrStoreUnavailable はデータストアに到達できないことを表します
	ErrStoreUnavailable = errors.New("product store unavailable")

	// ErrUnsupportedField は検索方式が対応していないフィールドを表します
	ErrUnsupportedField = errors.New("unsupported search field")

	// ErrInvalidNutritionFacts は栄養成分が数値/文字列のマップでないことを表します
	ErrInvalidNutritionFacts = errors.New("invalid nutrition facts")
)
