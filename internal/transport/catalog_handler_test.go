package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"glowcart/internal/catalog"
	"glowcart/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Mock catalog service for testing
type mockCatalogService struct {
	lastBrowse  *catalog.BrowseQuery
	lastRoutine *catalog.RoutineRequest
	lastUserID  string
	failWith    error
}

func (m *mockCatalogService) Browse(ctx context.Context, query *catalog.BrowseQuery) (*catalog.BrowseResult, error) {
	m.lastBrowse = query
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &catalog.BrowseResult{
		Items:    []*domain.Product{},
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

func (m *mockCatalogService) Recommend(ctx context.Context, req *catalog.RoutineRequest, userID string) (*catalog.RoutineResult, error) {
	m.lastRoutine = req
	m.lastUserID = userID
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &catalog.RoutineResult{
		Title:  catalog.RoutineTitle(req.Skin),
		Lips:   []catalog.RoutineItem{},
		Eyes:   []catalog.RoutineItem{},
		Base:   []catalog.RoutineItem{},
		Cheeks: []catalog.RoutineItem{},
	}, nil
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return []*domain.Category{{ID: 1, Name: "Lips"}}, nil
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, category *domain.Category) error {
	category.ID = 7
	return nil
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	product.ID = 7
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(svc *mockCatalogService) chi.Router {
	router := chi.NewRouter()
	handler := NewCatalogHandler(svc, zap.NewNop())
	handler.RegisterRoutes(router, passthrough, passthrough, passthrough)
	return router
}

func TestBrowseParsesFacets(t *testing.T) {
	svc := &mockCatalogService{}
	router := newTestRouter(svc)

	target := "/api/catalog/products?page=2&page_size=6&category_tree_id=10&q=tint&sort=price_asc" +
		"&price_min=5.5&price_max=30&in_stock=true&discounted=false&brands=Lumel,Dewlight" +
		"&suitable_for_skin=3&finish=Natural&coverage=Full&has_spf=true&min_rating=4"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	q := svc.lastBrowse
	if q == nil {
		t.Fatal("service never received a query")
	}
	if q.Page != 2 || q.PageSize != 6 {
		t.Errorf("paging parsed wrong: %+v", q)
	}
	if q.CategoryTreeID == nil || *q.CategoryTreeID != 10 {
		t.Errorf("category_tree_id parsed wrong: %+v", q.CategoryTreeID)
	}
	if q.Query != "tint" || q.Sort != catalog.SortPriceAsc {
		t.Errorf("q/sort parsed wrong: %+v", q)
	}
	if q.PriceMin == nil || *q.PriceMin != 5.5 || q.PriceMax == nil || *q.PriceMax != 30 {
		t.Errorf("price window parsed wrong: %+v", q)
	}
	if q.InStock == nil || !*q.InStock || q.Discounted == nil || *q.Discounted {
		t.Errorf("stock flags parsed wrong: %+v", q)
	}
	if !reflect.DeepEqual(q.Brands, []string{"Lumel", "Dewlight"}) {
		t.Errorf("brands parsed wrong: %v", q.Brands)
	}
	if q.SkinTypeMask != 3 {
		t.Errorf("skin mask parsed wrong: %d", q.SkinTypeMask)
	}
	if q.Finish != "Natural" || q.Coverage != "Full" {
		t.Errorf("finish/coverage parsed wrong: %+v", q)
	}
	if q.HasSPF == nil || !*q.HasSPF {
		t.Errorf("has_spf parsed wrong: %+v", q.HasSPF)
	}
	if q.MinRating == nil || *q.MinRating != 4 {
		t.Errorf("min_rating parsed wrong: %+v", q.MinRating)
	}
}

// Feature: beauty-catalog, Property 47: Bad filter values never fail a browse
// Validates: Requirements 16.3
func TestProperty_MalformedBrowseParamsStillSucceed(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("arbitrary parameter junk yields 200 with defaults", prop.ForAll(
		func(page, priceMin, inStock, skin string) bool {
			svc := &mockCatalogService{}
			router := newTestRouter(svc)

			params := url.Values{}
			params.Set("page", page)
			params.Set("price_min", priceMin)
			params.Set("in_stock", inStock)
			params.Set("suitable_for_skin", skin)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/catalog/products?"+params.Encode(), nil)
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Logf("FAIL: status %d for params %s", rec.Code, params.Encode())
				return false
			}
			// Whatever arrived, the engine always sees a sane page.
			return svc.lastBrowse != nil && svc.lastBrowse.Page >= 1 && svc.lastBrowse.PageSize >= 1
		},
		gen.RegexMatch(`[a-z!@#%^&*]{0,8}`),
		gen.RegexMatch(`[a-z.,-]{0,8}`),
		gen.RegexMatch(`[a-z0-9]{0,6}`),
		gen.RegexMatch(`[a-z-]{0,6}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRecommendValidatesRequiredFields(t *testing.T) {
	svc := &mockCatalogService{}
	router := newTestRouter(svc)

	body := bytes.NewBufferString(`{"skin":"Dry","vibe":"Bold"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/routine", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if _, ok := payload["error"]; !ok {
		t.Error("expected structured error envelope")
	}
}

func TestRecommendAcceptsUnknownVocabulary(t *testing.T) {
	// Presence is validated; the values themselves stay permissive and are
	// resolved by the engine's fallback branches.
	svc := &mockCatalogService{}
	router := newTestRouter(svc)

	body := bytes.NewBufferString(`{"skin":"porcelain","vibe":"y2k","env":"moon base","must":"Everything"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/routine", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result catalog.RoutineResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Title != "Balanced Radiance" {
		t.Errorf("unexpected title %q", result.Title)
	}
}

func TestRecommendFullRequestRoundTrip(t *testing.T) {
	svc := &mockCatalogService{}
	router := newTestRouter(svc)

	body := bytes.NewBufferString(`{
		"skin": "Oily",
		"vibe": "Soft Glam",
		"env": "Party",
		"must": "Eyes",
		"undertone": "Cool",
		"eye_color": "Hazel/Green"
	}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/routine", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	want := &catalog.RoutineRequest{
		Skin:      "Oily",
		Vibe:      "Soft Glam",
		Env:       "Party",
		Must:      "Eyes",
		Undertone: "Cool",
		EyeColor:  "Hazel/Green",
	}
	if !reflect.DeepEqual(svc.lastRoutine, want) {
		t.Errorf("service received %+v, want %+v", svc.lastRoutine, want)
	}
}

func TestListCategories(t *testing.T) {
	svc := &mockCatalogService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var categories []*domain.Category
	if err := json.NewDecoder(rec.Body).Decode(&categories); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Lips" {
		t.Errorf("unexpected categories: %+v", categories)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := &mockCatalogService{}
	router := newTestRouter(svc)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"name":"Tint","brand":"Lumel","price":12.5,"category_id":2,"is_active":true}`, http.StatusCreated},
		{"missing brand", `{"name":"Tint","price":12.5,"category_id":2}`, http.StatusBadRequest},
		{"negative price", `{"name":"Tint","brand":"Lumel","price":-1,"category_id":2}`, http.StatusBadRequest},
		{"mask out of range", `{"name":"Tint","brand":"Lumel","price":2,"category_id":2,"skin_type_mask":99}`, http.StatusBadRequest},
		{"not json", `nope`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/catalog/products", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestBrowseServiceFailureIs500(t *testing.T) {
	svc := &mockCatalogService{failWith: fmt.Errorf("snapshot load failed")}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog/products", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
