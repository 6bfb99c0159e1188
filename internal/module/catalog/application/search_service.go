package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/mo"

	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// SearchService は商品一覧・検索のユースケースを提供します
//
// 検索語の長さで方式を選びます。5文字以下は部分一致、それより長い場合は
// トライグラム類似度で検索し、0件なら部分一致にフォールバックします。
type SearchService struct {
	searcher domain.ProductSearcher
	pageSize int
	log      *slog.Logger
}

// NewSearchService は新しいSearchServiceを作成します
// pageSize が0以下の場合はページネーションを行いません
func NewSearchService(searcher domain.ProductSearcher, pageSize int, log *slog.Logger) *SearchService {
	return &SearchService{
		searcher: searcher,
		pageSize: pageSize,
		log:      log,
	}
}

// ListProductsParams は商品一覧のパラメータ
type ListProductsParams struct {
	Search mo.Option[string]
	Page   mo.Option[string]
}

// ProductList は商品一覧の結果
type ProductList struct {
	Products []*domain.Product
	// Scores はトライグラム検索時のみ設定され、Products と同じ順序です
	Scores   []map[domain.Field]float64
	Strategy domain.Strategy
	// Page はページネーション無効時は None です
	Page mo.Option[PageInfo]
}

// Paginated はページネーションされた結果かどうかを返します
func (l *ProductList) Paginated() bool {
	return l.Page.IsPresent()
}

// ListProducts は検索語とページ番号から商品一覧を返します
// page=last は全件数を求めたうえで最終ページを返します
func (s *SearchService) ListProducts(ctx context.Context, params ListProductsParams) (*ProductList, error) {
	paginated := s.pageSize > 0

	window := domain.Window{}
	page := pageRequest{Number: 1}
	if paginated {
		req, err := parsePageNumber(params.Page, s.pageSize)
		if err != nil {
			return nil, err
		}
		page = req
		window = pageWindow(page.Number, s.pageSize)
	}

	search := params.Search.OrEmpty()
	strategy := domain.SelectStrategy(search)

	s.log.Info("Starting product search",
		"search", search,
		"strategy", strategy,
		"page", params.Page.OrElse("1"),
	)

	list, total, err := s.run(ctx, strategy, search, window)
	if err != nil {
		return nil, err
	}

	if paginated && page.Last {
		page.Number = pageCount(total, s.pageSize)
		if page.Number > 1 {
			list, total, err = s.run(ctx, strategy, search, pageWindow(page.Number, s.pageSize))
			if err != nil {
				return nil, err
			}
		}
	}

	if paginated {
		info, err := newPageInfo(page.Number, s.pageSize, total)
		if err != nil {
			return nil, err
		}
		list.Page = mo.Some(info)
	}

	s.log.Info("Product search completed",
		"search", search,
		"strategy", list.Strategy,
		"count", total,
		"results", len(list.Products),
	)

	return list, nil
}

// run は dispatch を実行し、ストア起因のエラーを ErrStoreUnavailable で包みます
// 不正なデータや呼び出し側の誤りを表すドメインエラーはそのまま返します
func (s *SearchService) run(ctx context.Context, strategy domain.Strategy, search string, window domain.Window) (*ProductList, int, error) {
	list, total, err := s.dispatch(ctx, strategy, search, window)
	if err == nil {
		return list, total, nil
	}

	s.log.Error("Product search failed",
		"search", search,
		"strategy", strategy,
		"error", err,
	)
	if isDomainError(err) {
		return nil, 0, err
	}
	return nil, 0, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidRequest) ||
		errors.Is(err, domain.ErrInvalidNutritionFacts) ||
		errors.Is(err, domain.ErrUnsupportedField)
}

// dispatch は選択された方式で検索を実行し、結果と全件数を返します
func (s *SearchService) dispatch(ctx context.Context, strategy domain.Strategy, search string, window domain.Window) (*ProductList, int, error) {
	switch strategy {
	case domain.StrategyAll:
		set, err := s.searcher.ListAll(ctx, window)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list products: %w", err)
		}
		return &ProductList{Products: set.Products, Strategy: strategy}, set.Total, nil

	case domain.StrategySubstring:
		return s.substring(ctx, strategy, search, window)

	default:
		scored, err := s.searcher.TrigramSearch(ctx, domain.TrigramFields, search, domain.TrigramThreshold, window)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to run trigram search: %w", err)
		}
		// ページ単位ではなく全件数で判定する
		if scored.Total == 0 {
			s.log.Debug("Trigram search found nothing, falling back to substring search", "search", search)
			return s.substring(ctx, domain.StrategyFallback, search, window)
		}

		set := scored.Unscored()
		scores := make([]map[domain.Field]float64, 0, len(scored.Products))
		for _, sp := range scored.Products {
			scores = append(scores, sp.Similarity)
		}
		return &ProductList{Products: set.Products, Scores: scores, Strategy: strategy}, set.Total, nil
	}
}

func (s *SearchService) substring(ctx context.Context, strategy domain.Strategy, search string, window domain.Window) (*ProductList, int, error) {
	set, err := s.searcher.SubstringSearch(ctx, domain.SubstringFields, search, window)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to run substring search: %w", err)
	}
	return &ProductList{Products: set.Products, Strategy: strategy}, set.Total, nil
}
