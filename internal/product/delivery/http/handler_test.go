package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

type memCategories struct {
	mu   sync.Mutex
	next int
	rows map[int]domain.Category
}

func (m *memCategories) Create(_ context.Context, c *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	c.ID = m.next
	m.rows[c.ID] = *c
	return nil
}

func (m *memCategories) Update(_ context.Context, c *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = *c
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id int) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, apperror.NotFound("Category", id)
	}
	return &c, nil
}

func (m *memCategories) FindAll(context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Category, 0, len(m.rows))
	for i := 1; i <= m.next; i++ {
		if c, ok := m.rows[i]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperror.NotFound("Category", id)
	}
	delete(m.rows, id)
	return nil
}

type memProducts struct {
	mu         sync.Mutex
	next       int
	rows       map[int]domain.Product
	categories *memCategories
}

func (m *memProducts) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	p.ID = m.next
	m.rows[p.ID] = *p
	return nil
}

func (m *memProducts) Update(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.ID] = *p
	return nil
}

func (m *memProducts) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	m.mu.Lock()
	p, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, apperror.NotFound("Product", id)
	}
	if p.CategoryRef != nil {
		p.Category, _ = m.categories.FindByID(ctx, *p.CategoryRef)
	}
	return &p, nil
}

func (m *memProducts) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for i := 1; i <= m.next; i++ {
		if p, err := m.FindByID(ctx, i); err == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProducts) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperror.NotFound("Product", id)
	}
	delete(m.rows, id)
	return nil
}

func (m *memProducts) DecrementStock(_ context.Context, id, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return apperror.NotFound("Product", id)
	}
	p.Quantity = max(p.Quantity-quantity, 0)
	m.rows[id] = p
	return nil
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	logger.Use(io.Discard, "product-service")

	categories := &memCategories{rows: map[int]domain.Category{}}
	products := &memProducts{rows: map[int]domain.Product{}, categories: categories}

	commands := &CommandHandlers{
		SaveCategory:   command.NewSaveCategoryHandler(categories),
		DeleteCategory: command.NewDeleteCategoryHandler(categories),
		SaveProduct:    command.NewSaveProductHandler(products, categories),
		DeleteProduct:  command.NewDeleteProductHandler(products),
	}
	queries := &QueryHandlers{
		GetCategory:    query.NewGetCategoryHandler(categories),
		ListCategories: query.NewListCategoriesHandler(categories),
		GetProduct:     query.NewGetProductHandler(products),
		ListProducts:   query.NewListProductsHandler(products),
	}

	router := mux.NewRouter()
	NewProductHandler(commands, queries).RegisterRoutes(router.PathPrefix("/product-service").Subrouter())
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/product-service/api/categories", `{"categoryTitle":"Peripherals"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(router, http.MethodPost, "/product-service/api/products",
		`{"productTitle":"Keyboard","sku":"KB-1","priceUnit":49.5,"quantity":10,"category":{"categoryId":1}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created dto.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ProductID)
	assert.Equal(t, 1, created.CategoryID)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Peripherals", created.Category.CategoryTitle)

	rec = do(router, http.MethodPut, "/product-service/api/products/1",
		`{"productTitle":"Keyboard","sku":"KB-1","priceUnit":45,"quantity":8,"categoryId":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(router, http.MethodGet, "/product-service/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.Collection[dto.Product]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Collection, 1)
	assert.Equal(t, 45.0, list.Collection[0].PriceUnit)
	assert.Equal(t, 8, list.Collection[0].Quantity)

	rec = do(router, http.MethodDelete, "/product-service/api/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `true`, rec.Body.String())

	rec = do(router, http.MethodGet, "/product-service/api/products/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "1")
}

func TestSaveProductUnknownCategory(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/product-service/api/products",
		`{"productTitle":"Mouse","sku":"MS-1","priceUnit":10,"quantity":1,"categoryId":9}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "9")
}

func TestSaveProductValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing sku", body: `{"productTitle":"Mouse","priceUnit":10}`},
		{name: "negative price", body: `{"productTitle":"Mouse","sku":"MS-1","priceUnit":-1}`},
		{name: "broken json", body: `{"productTitle":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/product-service/api/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := do(router, http.MethodPut, "/product-service/api/products", `{"productTitle":"Mouse","sku":"MS-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryCannotBeItsOwnParent(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/product-service/api/categories", `{"categoryTitle":"Root"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodPut, "/product-service/api/categories/1", `{"categoryTitle":"Root","parentCategoryId":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodDelete, "/product-service/api/categories/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
