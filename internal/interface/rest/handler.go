package rest

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/mo"

	"github.com/jinford/catalog/internal/module/catalog/application"
	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// ProductHandler は商品APIのハンドラーです
type ProductHandler struct {
	search   *application.SearchService
	products *application.ProductService
}

// NewProductHandler は新しいProductHandlerを作成します
func NewProductHandler(search *application.SearchService, products *application.ProductService) *ProductHandler {
	return &ProductHandler{search: search, products: products}
}

// pageResponse はページネーションされた商品一覧です
type pageResponse struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []*domain.Product `json:"results"`
}

// ListProducts は GET /products を処理します
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := application.ListProductsParams{
		Search: queryOption(c, "search"),
		Page:   queryOption(c, "page"),
	}

	list, err := h.search.ListProducts(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}

	results := list.Products
	if results == nil {
		results = []*domain.Product{}
	}

	info, ok := list.Page.Get()
	if !ok {
		c.JSON(http.StatusOK, results)
		return
	}

	resp := pageResponse{Count: info.Count, Results: results}
	if info.HasNext() {
		next := pageURL(c, info.Number+1)
		resp.Next = &next
	}
	if info.HasPrevious() {
		previous := pageURL(c, info.Number-1)
		resp.Previous = &previous
	}
	c.JSON(http.StatusOK, resp)
}

// GetProduct は GET /products/:id を処理します
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Health は GET /healthz を処理します
func (h *ProductHandler) Health(c *gin.Context) {
	if err := h.products.Health(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// queryOption はクエリパラメータを Option で返します
// 空文字は指定ありとして扱います
func queryOption(c *gin.Context, name string) mo.Option[string] {
	if value, ok := c.GetQuery(name); ok {
		return mo.Some(value)
	}
	return mo.None[string]()
}

// pageURL は現在のリクエストURLの page を置き換えた絶対URLを返します
// 1ページ目への参照では page を取り除きます
func pageURL(c *gin.Context, number int) string {
	query := c.Request.URL.Query()
	if number <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(number))
	}

	u := url.URL{
		Scheme:   requestScheme(c),
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// requestScheme は X-Forwarded-Proto が http か https の場合のみそれを採用します
func requestScheme(c *gin.Context) string {
	switch proto := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto"))); proto {
	case "http", "https":
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
