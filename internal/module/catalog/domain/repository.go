package domain

import (
	"context"

	"github.com/google/uuid"
)

// === Product Repository Port ===

// ProductRepository は商品ストアの読み取りポートです
// 作成・更新・削除は外部の管理レイヤーが担います
type ProductRepository interface {
	ProductReader
	ProductSearcher
}

// ProductReader は単一商品の読み取り操作を定義します
type ProductReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Ping(ctx context.Context) error
}

// ProductSearcher は一覧・検索操作を定義します
// いずれの操作も window で切り出したページと、切り出し前の全件数を返します
type ProductSearcher interface {
	// ListAll は全商品をデフォルト順（作成日時、ID）で返します
	ListAll(ctx context.Context, window Window) (*ProductSet, error)

	// SubstringSearch は fields のいずれかが needle を大文字小文字を区別せず含む商品を返します
	SubstringSearch(ctx context.Context, fields []Field, needle string, window Window) (*ProductSet, error)

	// TrigramSearch は fields のいずれかの類似度が threshold を超える商品を
	// fields の順に類似度の降順で返します
	TrigramSearch(ctx context.Context, fields []Field, needle string, threshold float64, window Window) (*ScoredProductSet, error)
}
