package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/catalog/internal/interface/rest"
	"github.com/jinford/catalog/internal/module/catalog/adapter/memory"
	"github.com/jinford/catalog/internal/module/catalog/application"
	"github.com/jinford/catalog/internal/module/catalog/domain"
	testutil "github.com/jinford/catalog/internal/module/catalog/testing"
	"github.com/jinford/catalog/internal/platform/logger"
)

type page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []*domain.Product `json:"results"`
}

func newTestRouter(repo domain.ProductRepository, pageSize int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Discard()
	handler := rest.NewProductHandler(
		application.NewSearchService(repo, pageSize, log),
		application.NewProductService(repo, log),
	)
	return rest.NewRouter(handler, log)
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = "catalog.test"
	r.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) page {
	t.Helper()
	var p page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func resultNames(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestListProducts_Search(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(testutil.SampleCatalog()), 10)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "no search lists everything", target: "/products", want: testutil.SampleCatalogNames()},
		{name: "empty search lists everything", target: "/products?search=", want: testutil.SampleCatalogNames()},
		{name: "short query uses substring", target: "/products?search=cola", want: []string{"Cola Fizz", "Classic Soda"}},
		{name: "long query uses similarity", target: "/products?search=breakfast+cereal", want: []string{"Breakfast Cereal Bar", "Oat Flakes"}},
		{name: "long query falls back to substring", target: "/products?search=sodium", want: []string{"Salted Crackers"}},
		{name: "no match at all", target: "/products?search=zzzznomatch", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, tt.target)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			p := decodePage(t, w)
			assert.Equal(t, tt.want, resultNames(p.Results))
			assert.Equal(t, len(tt.want), p.Count)
			assert.Nil(t, p.Next)
			assert.Nil(t, p.Previous)
		})
	}
}

func TestListProducts_ProductJSON(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(testutil.SampleCatalog()), 10)

	w := get(t, r, "/products?search=water")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []map[string]json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)

	result := body.Results[0]
	assert.ElementsMatch(t, []string{"id", "name", "brand", "category", "nutrition_facts"}, keys(result))
	assert.JSONEq(t, `"Sparkling Water"`, string(result["name"]))
	assert.JSONEq(t, `null`, string(result["nutrition_facts"]))
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestListProducts_Pagination(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(testutil.SampleCatalog()), 3)

	first := decodePage(t, get(t, r, "/products"))
	assert.Equal(t, 7, first.Count)
	assert.Len(t, first.Results, 3)
	require.NotNil(t, first.Next)
	assert.Equal(t, "http://catalog.test/products?page=2", *first.Next)
	assert.Nil(t, first.Previous)

	second := decodePage(t, get(t, r, "/products?page=2"))
	require.NotNil(t, second.Next)
	require.NotNil(t, second.Previous)
	assert.Equal(t, "http://catalog.test/products?page=3", *second.Next)
	assert.Equal(t, "http://catalog.test/products", *second.Previous)

	last := decodePage(t, get(t, r, "/products?page=3"))
	assert.Len(t, last.Results, 1)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "http://catalog.test/products?page=2", *last.Previous)

	searched := decodePage(t, get(t, r, "/products?search=a&page=2"))
	require.NotNil(t, searched.Previous)
	assert.Equal(t, "http://catalog.test/products?search=a", *searched.Previous)
}

func TestListProducts_LastPage(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(testutil.SampleCatalog()), 3)

	w := get(t, r, "/products?page=last")
	require.Equal(t, http.StatusOK, w.Code)

	last := decodePage(t, w)
	assert.Equal(t, 7, last.Count)
	assert.Equal(t, testutil.SampleCatalogNames()[6:], resultNames(last.Results))
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "http://catalog.test/products?page=2", *last.Previous)
}

func TestListProducts_ForwardedProto(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(testutil.SampleCatalog()), 3)

	tests := []struct {
		proto string
		want  string
	}{
		{proto: "https", want: "https://catalog.test/products?page=2"},
		{proto: "HTTPS", want: "https://catalog.test/products?page=2"},
		{proto: "javascript", want: "http://catalog.test/products?page=2"},
		{proto: "evil.test/x?", want: "http://catalog.test/products?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.proto, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			req.Host = "catalog.test"
			req.Header.Set("X-Forwarded-Proto", tt.proto)
			r.ServeHTTP(w, req)

			got := decodePage(t, w)
			require.NotNil(t, got.Next)
			assert.Equal(t, tt.want, *got.Next)
		})
	}
}

func TestListProducts_PageErrors(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(testutil.SampleCatalog()), 3)

	tests := []struct {
		target string
		status int
		detail string
	}{
		{target: "/products?page=4", status: http.StatusNotFound, detail: "Invalid page."},
		{target: "/products?search=zzzznomatch&page=2", status: http.StatusNotFound, detail: "Invalid page."},
		{target: "/products?page=0", status: http.StatusBadRequest},
		{target: "/products?page=abc", status: http.StatusBadRequest},
		{target: "/products?page=9223372036854775807", status: http.StatusNotFound, detail: "Invalid page."},
		{target: "/products?search=cola&page=9223372036854775807", status: http.StatusNotFound, detail: "Invalid page."},
		{target: "/products?search=breakfast+cereal&page=9223372036854775807", status: http.StatusNotFound, detail: "Invalid page."},
		{target: "/products?page=99999999999999999999", status: http.StatusNotFound, detail: "Invalid page."},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(t, r, tt.target)
			assert.Equal(t, tt.status, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["detail"])
			if tt.detail != "" {
				assert.Equal(t, tt.detail, body["detail"])
			}
		})
	}

	empty := get(t, r, "/products?search=zzzznomatch&page=1")
	assert.Equal(t, http.StatusOK, empty.Code)
	assert.Equal(t, 0, decodePage(t, empty).Count)
}

func TestListProducts_PaginationDisabled(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(testutil.SampleCatalog()), 0)

	w := get(t, r, "/products?search=cola&page=99")
	require.Equal(t, http.StatusOK, w.Code)

	var results []*domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Equal(t, []string{"Cola Fizz", "Classic Soda"}, resultNames(results))
}

func TestListProducts_StoreUnavailable(t *testing.T) {
	repo := &testutil.MockProductRepository{
		ListAllFunc: func(ctx context.Context, window domain.Window) (*domain.ProductSet, error) {
			return nil, errors.New("connection refused")
		},
	}
	r := newTestRouter(repo, 10)

	w := get(t, r, "/products")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"detail":"Service temporarily unavailable."}`, w.Body.String())
}

func TestListProducts_CorruptRecord(t *testing.T) {
	repo := &testutil.MockProductRepository{
		SubstringSearchFunc: func(ctx context.Context, fields []domain.Field, needle string, window domain.Window) (*domain.ProductSet, error) {
			_, err := domain.ParseNutritionFacts([]byte(`["not", "a", "map"]`))
			return nil, err
		},
	}
	r := newTestRouter(repo, 10)

	w := get(t, r, "/products?search=cola")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal server error."}`, w.Body.String())
}

func TestGetProduct(t *testing.T) {
	repo := memory.NewProductRepository(testutil.SampleCatalog())
	r := newTestRouter(repo, 10)

	all, err := repo.ListAll(context.Background(), domain.Window{})
	require.NoError(t, err)
	want := all.Products[0]

	w := get(t, r, "/products/"+want.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.NutritionFacts.CanonicalText(), got.NutritionFacts.CanonicalText())

	assert.Equal(t, http.StatusNotFound, get(t, r, "/products/00000000-0000-0000-0000-000000000001").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/products/not-a-uuid").Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(memory.NewProductRepository(nil), 10)
	w := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := newTestRouter(&testutil.MockProductRepository{
		PingFunc: func(ctx context.Context) error { return errors.New("connection refused") },
	}, 10)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, down, "/healthz").Code)
}
