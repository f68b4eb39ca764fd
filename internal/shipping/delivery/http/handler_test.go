package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/remote"
)

type memItems struct {
	mu    sync.Mutex
	items []domain.OrderItem
}

func (m *memItems) index(key compositekey.OrderItemKey) int {
	for i, item := range m.items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

func (m *memItems) Create(_ context.Context, item *domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index(item.Key()) >= 0 {
		return apperror.Conflict("OrderItem", fmt.Errorf("duplicate key %s", item.Key()))
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *memItems) Update(_ context.Context, item *domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(item.Key())
	if i < 0 {
		return apperror.NotFound("OrderItem", item.Key())
	}
	m.items[i].OrderedQuantity = item.OrderedQuantity
	return nil
}

func (m *memItems) FindByID(_ context.Context, key compositekey.OrderItemKey) (*domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(key)
	if i < 0 {
		return nil, apperror.NotFound("OrderItem", key)
	}
	item := m.items[i]
	return &item, nil
}

func (m *memItems) FindAll(context.Context) ([]domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.OrderItem(nil), m.items...), nil
}

func (m *memItems) Delete(_ context.Context, key compositekey.OrderItemKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(key)
	if i < 0 {
		return apperror.NotFound("OrderItem", key)
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

type callCounter struct {
	mu    sync.Mutex
	paths map[string]int
}

func (c *callCounter) hit(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[path]++
}

func (c *callCounter) count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paths[path]
}

func (c *callCounter) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.paths {
		n += v
	}
	return n
}

type publisherStub struct {
	mu     sync.Mutex
	events []kafka.Event
}

func (p *publisherStub) Publish(_ context.Context, event kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *publisherStub) Close() error { return nil }

type fixture struct {
	router    *mux.Router
	items     *memItems
	calls     *callCounter
	publisher *publisherStub
}

// newFixture serves products 501 and 502 and order 900 from one fake
// upstream registered for both services
func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger.Use(io.Discard, "shipping-service")

	calls := &callCounter{paths: map[string]int{}}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.hit(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/product-service/api/products/501":
			_, _ = w.Write([]byte(`{"productId":501,"productTitle":"Keyboard","sku":"KB","priceUnit":10,"quantity":5}`))
		case "/product-service/api/products/502":
			_, _ = w.Write([]byte(`{"productId":502,"productTitle":"Mouse","sku":"MS","priceUnit":5,"quantity":5}`))
		case "/order-service/api/orders/900":
			_, _ = w.Write([]byte(`{"orderId":900,"orderDesc":"desk setup","orderFee":15}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	registry := discovery.NewRegistry(map[string][]string{
		"product-service": {upstream.URL},
		"order-service":   {upstream.URL},
	})
	lookup := remote.NewClient(registry, 2*time.Second)

	items := &memItems{}
	publisher := &publisherStub{}
	engine := query.NewOrderItemEngine(items, lookup, enrich.Options{})

	handler := NewShippingHandler(
		&CommandHandlers{
			SaveOrderItem:   command.NewSaveOrderItemHandler(items, engine, publisher),
			DeleteOrderItem: command.NewDeleteOrderItemHandler(items),
		},
		&QueryHandlers{
			GetOrderItem:   query.NewGetOrderItemHandler(engine),
			ListOrderItems: query.NewListOrderItemsHandler(engine),
		},
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router.PathPrefix("/shipping-service").Subrouter())
	return &fixture{router: router, items: items, calls: calls, publisher: publisher}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestListSharesOrderLookup(t *testing.T) {
	f := newFixture(t)
	f.items.items = []domain.OrderItem{
		{ProductID: 501, OrderID: 900, OrderedQuantity: 1},
		{ProductID: 502, OrderID: 900, OrderedQuantity: 2},
	}

	rec := f.do(http.MethodGet, "/shipping-service/api/shippings", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list dto.Collection[dto.OrderItem]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Collection, 2)

	assert.Equal(t, "Keyboard", list.Collection[0].Product.ProductTitle)
	assert.Equal(t, "Mouse", list.Collection[1].Product.ProductTitle)
	for _, item := range list.Collection {
		require.NotNil(t, item.Order)
		assert.Equal(t, "desk setup", item.Order.OrderDesc)
	}

	assert.Equal(t, 1, f.calls.count("/order-service/api/orders/900"))
	assert.Equal(t, 1, f.calls.count("/product-service/api/products/501"))
	assert.Equal(t, 1, f.calls.count("/product-service/api/products/502"))
}

func TestGetByCompositeKey(t *testing.T) {
	f := newFixture(t)
	f.items.items = []domain.OrderItem{{ProductID: 501, OrderID: 900, OrderedQuantity: 3}}

	rec := f.do(http.MethodGet, "/shipping-service/api/shippings/501/900", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var item dto.OrderItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 3, item.OrderedQuantity)
	require.NotNil(t, item.Product)
	require.NotNil(t, item.Order)
}

func TestGetMissingItemMakesNoRemoteCalls(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/shipping-service/api/shippings/1/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, f.calls.total())
}

func TestGetMalformedKey(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/shipping-service/api/shippings/abc/900", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.calls.total())
}

func TestUnknownProductIsBestEffort(t *testing.T) {
	f := newFixture(t)
	f.items.items = []domain.OrderItem{{ProductID: 777, OrderID: 900, OrderedQuantity: 1}}

	rec := f.do(http.MethodGet, "/shipping-service/api/shippings/777/900", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var item dto.OrderItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Nil(t, item.Product)
	assert.NotNil(t, item.Order)
}

func TestCreatePublishesShippingCreated(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/shipping-service/api/shippings",
		`{"orderedQuantity":2,"product":{"productId":501},"order":{"orderId":900}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, kafka.EventTypeShippingCreated, event.EventType)
	assert.Equal(t, "/501/900", event.Key)

	rec = f.do(http.MethodPost, "/shipping-service/api/shippings", `{"productId":501,"orderId":900,"orderedQuantity":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateOnlyExistingKey(t *testing.T) {
	f := newFixture(t)
	f.items.items = []domain.OrderItem{{ProductID: 501, OrderID: 900, OrderedQuantity: 1}}

	rec := f.do(http.MethodPut, "/shipping-service/api/shippings", `{"productId":501,"orderId":900,"orderedQuantity":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 4, f.items.items[0].OrderedQuantity)

	rec = f.do(http.MethodPut, "/shipping-service/api/shippings", `{"productId":502,"orderId":900,"orderedQuantity":4}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.publisher.events)
}

func TestDeleteByCompositeKey(t *testing.T) {
	f := newFixture(t)
	f.items.items = []domain.OrderItem{
		{ProductID: 501, OrderID: 900},
		{ProductID: 502, OrderID: 900},
	}

	rec := f.do(http.MethodDelete, "/shipping-service/api/shippings/501/900", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
	require.Len(t, f.items.items, 1)
	assert.Equal(t, 502, f.items.items[0].ProductID)
}
