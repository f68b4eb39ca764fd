package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/remote"
)

type memCarts struct {
	mu    sync.Mutex
	next  int
	carts map[int]domain.Cart
}

func (m *memCarts) Create(_ context.Context, c *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	c.ID = m.next
	m.carts[c.ID] = *c
	return nil
}

func (m *memCarts) Update(_ context.Context, c *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[c.ID] = *c
	return nil
}

func (m *memCarts) FindByID(_ context.Context, id int) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[id]
	if !ok {
		return nil, apperror.NotFound("Cart", id)
	}
	return &c, nil
}

func (m *memCarts) FindAll(context.Context) ([]domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Cart, 0, len(m.carts))
	for i := 1; i <= m.next; i++ {
		if c, ok := m.carts[i]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCarts) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[id]; !ok {
		return apperror.NotFound("Cart", id)
	}
	delete(m.carts, id)
	return nil
}

type memOrders struct {
	mu     sync.Mutex
	next   int
	orders map[int]domain.Order
	carts  *memCarts
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	o.ID = m.next
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrders) Update(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrders) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	m.mu.Lock()
	o, ok := m.orders[id]
	m.mu.Unlock()
	if !ok {
		return nil, apperror.NotFound("Order", id)
	}
	if cart, err := m.carts.FindByID(ctx, o.CartRef); err == nil {
		o.Cart = cart
	}
	return &o, nil
}

func (m *memOrders) FindAll(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	n := m.next
	m.mu.Unlock()
	out := []domain.Order{}
	for i := 1; i <= n; i++ {
		if o, err := m.FindByID(ctx, i); err == nil {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return apperror.NotFound("Order", id)
	}
	delete(m.orders, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

type fixture struct {
	router    *mux.Router
	carts     *memCarts
	publisher *recordingPublisher
	userCalls *atomic.Int32
}

// newFixture wires the order handler against a fake user-service that
// knows user 55 only.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger.Use(io.Discard, "order-service")

	userCalls := &atomic.Int32{}
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCalls.Add(1)
		if r.URL.Path != "/user-service/api/users/55" {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":55,"firstName":"Alice"}`))
	}))
	t.Cleanup(users.Close)

	registry := discovery.NewRegistry(map[string][]string{"user-service": {users.URL}})
	lookup := remote.NewClient(registry, 2*time.Second)

	carts := &memCarts{carts: map[int]domain.Cart{}}
	orders := &memOrders{orders: map[int]domain.Order{}, carts: carts}
	publisher := &recordingPublisher{}
	recorder := metrics.NewRecorder("order-service-test")

	cartEngine := query.NewCartEngine(carts, lookup, enrich.Options{})
	orderEngine := query.NewOrderEngine(orders, lookup, enrich.Options{})

	commands := &CommandHandlers{
		SaveCart:    command.NewSaveCartHandler(carts, cartEngine),
		DeleteCart:  command.NewDeleteCartHandler(carts),
		SaveOrder:   command.NewSaveOrderHandler(orders, carts, orderEngine, publisher, recorder),
		DeleteOrder: command.NewDeleteOrderHandler(orders, publisher, recorder),
	}
	queries := &QueryHandlers{
		GetCart:    query.NewGetCartHandler(cartEngine),
		ListCarts:  query.NewListCartsHandler(cartEngine),
		GetOrder:   query.NewGetOrderHandler(orderEngine),
		ListOrders: query.NewListOrdersHandler(orderEngine),
	}

	router := mux.NewRouter()
	NewOrderHandler(commands, queries).RegisterRoutes(router.PathPrefix("/order-service").Subrouter())
	return &fixture{router: router, carts: carts, publisher: publisher, userCalls: userCalls}
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

func TestGetCartEnrichedWithUser(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.carts.Create(context.Background(), &domain.Cart{UserID: 55}))

	rec := f.do(http.MethodGet, "/order-service/api/carts/1", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cart dto.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 55, cart.UserID)
	require.NotNil(t, cart.User)
	assert.Equal(t, "Alice", cart.User.FirstName)
}

func TestGetCartNotFoundSkipsLookup(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/order-service/api/carts/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "999")
	assert.Zero(t, f.userCalls.Load())
}

func TestCartWithUnknownUserKeepsLocalFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/order-service/api/carts", `{"userId":77}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cart dto.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 1, cart.CartID)
	assert.Equal(t, 77, cart.UserID)
	assert.Nil(t, cart.User)
}

func TestListCartsLooksUpEachUserOnce(t *testing.T) {
	f := newFixture(t)
	for range 3 {
		require.NoError(t, f.carts.Create(context.Background(), &domain.Cart{UserID: 55}))
	}

	rec := f.do(http.MethodGet, "/order-service/api/carts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.Collection[dto.Cart]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Collection, 3)
	for _, c := range list.Collection {
		require.NotNil(t, c.User)
		assert.Equal(t, "Alice", c.User.FirstName)
	}
	assert.EqualValues(t, 1, f.userCalls.Load())
}

func TestCreateOrderPublishesEvent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.carts.Create(context.Background(), &domain.Cart{UserID: 55}))

	rec := f.do(http.MethodPost, "/order-service/api/orders",
		`{"orderDesc":"keyboard","orderFee":99.5,"cart":{"cartId":1}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order dto.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, 1, order.OrderID)
	assert.False(t, order.OrderDate.IsZero())
	require.NotNil(t, order.Cart)
	require.NotNil(t, order.Cart.User)
	assert.Equal(t, "Alice", order.Cart.User.FirstName)
	assert.Equal(t, []string{kafka.EventTypeOrderCreated}, f.publisher.types())
}

func TestCreateOrderForMissingCart(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/order-service/api/orders", `{"orderFee":10,"cartId":4}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.publisher.types())
}

func TestCreateOrderWithoutCart(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/order-service/api/orders", `{"orderFee":10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateThenDeleteOrder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.carts.Create(context.Background(), &domain.Cart{UserID: 55}))
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/order-service/api/orders", `{"orderFee":10,"cartId":1}`).Code)

	rec := f.do(http.MethodPut, "/order-service/api/orders/1", `{"orderDesc":"changed","orderFee":12,"cartId":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"orderDesc":"changed"`)

	rec = f.do(http.MethodDelete, "/order-service/api/orders/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))

	rec = f.do(http.MethodDelete, "/order-service/api/orders/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, []string{
		kafka.EventTypeOrderCreated,
		kafka.EventTypeOrderUpdated,
		kafka.EventTypeOrderDeleted,
	}, f.publisher.types())
}
