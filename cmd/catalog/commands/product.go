package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/mo"
	"github.com/urfave/cli/v3"

	"github.com/jinford/catalog/internal/module/catalog/application"
	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// ProductListAction は商品一覧を検索して表示するコマンドのアクション
func ProductListAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	params := application.ListProductsParams{}
	if cmd.IsSet("search") {
		params.Search = mo.Some(cmd.String("search"))
	}
	if cmd.IsSet("page") {
		params.Page = mo.Some(cmd.String("page"))
	}

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	list, err := appCtx.Container.SearchService.ListProducts(ctx, params)
	if err != nil {
		return fmt.Errorf("商品一覧の取得に失敗: %w", err)
	}

	displayProductList(os.Stdout, list)
	return nil
}

// ProductShowAction は商品詳細を表示するコマンドのアクション
func ProductShowAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	envFile := cmd.String("env")

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	product, err := appCtx.Container.ProductService.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("商品の取得に失敗: %w", err)
	}

	displayProduct(os.Stdout, product)
	return nil
}

// displayProductList は検索結果を表形式で表示します
func displayProductList(w io.Writer, list *application.ProductList) {
	fmt.Fprintf(w, "\n=== 商品一覧 (strategy: %s) ===\n", list.Strategy)
	if info, ok := list.Page.Get(); ok {
		fmt.Fprintf(w, "件数: %d  ページ: %d/%d\n\n", info.Count, info.Number, info.NumPages)
	} else {
		fmt.Fprintf(w, "件数: %d\n\n", len(list.Products))
	}

	scored := len(list.Scores) == len(list.Products) && len(list.Scores) > 0

	table := tablewriter.NewWriter(w)
	if scored {
		table.Header("ID", "名前", "ブランド", "カテゴリ", "name", "brand", "category")
	} else {
		table.Header("ID", "名前", "ブランド", "カテゴリ")
	}

	for i, p := range list.Products {
		row := []any{p.ID.String(), p.Name, p.Brand, p.Category}
		if scored {
			for _, f := range domain.TrigramFields {
				row = append(row, fmt.Sprintf("%.3f", list.Scores[i][f]))
			}
		}
		table.Append(row...)
	}
	table.Render()
}

// displayProduct は商品詳細を表示します
func displayProduct(w io.Writer, p *domain.Product) {
	fmt.Fprintln(w, "\n=== 商品詳細 ===")

	table := tablewriter.NewWriter(w)
	table.Header("項目", "値")
	table.Append("ID", p.ID.String())
	table.Append("名前", p.Name)
	table.Append("ブランド", p.Brand)
	table.Append("カテゴリ", p.Category)
	table.Render()

	if len(p.NutritionFacts) == 0 {
		fmt.Fprintln(w, "\n栄養成分: なし")
		return
	}

	fmt.Fprintln(w, "\n=== 栄養成分 ===")
	facts := tablewriter.NewWriter(w)
	facts.Header("成分", "値")
	for _, key := range p.NutritionFacts.Keys() {
		facts.Append(key, p.NutritionFacts[key].String())
	}
	facts.Render()
}
