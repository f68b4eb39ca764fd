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
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/remote"
)

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *mockPaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id int) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Payment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentRepository) FindAll(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *mockPaymentRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, event kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, event.EventType)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// orderService answers for order 900 only
func orderService(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/order-service/api/orders/900" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":900,"orderDesc":"keyboard","orderFee":99.5}`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newRouter(t *testing.T, repo domain.PaymentRepository, orderURL string, plan query.PlanOptions) (*mux.Router, *recordingPublisher) {
	t.Helper()
	logger.Use(io.Discard, "payment-service")

	registry := discovery.NewRegistry(map[string][]string{"order-service": {orderURL}})
	lookup := remote.NewClient(registry, time.Second)
	publisher := &recordingPublisher{}
	recorder := metrics.NewRecorder("payment-service-test")
	engine := query.NewPaymentEngine(repo, lookup, enrich.Options{}, plan)

	handler := NewPaymentHandler(
		&CommandHandlers{
			SavePayment:   command.NewSavePaymentHandler(repo, lookup, publisher, recorder),
			DeletePayment: command.NewDeletePaymentHandler(repo),
		},
		&QueryHandlers{
			GetPayment:   query.NewGetPaymentHandler(engine),
			ListPayments: query.NewListPaymentsHandler(engine),
		},
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router.PathPrefix("/payment-service").Subrouter())
	return router, publisher
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
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

func TestCreateCompletedPayment(t *testing.T) {
	repo := &mockPaymentRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.OrderID == 900 && p.IsPayed && p.PaymentStatus == domain.StatusCompleted
	})).Return(nil)
	router, publisher := newRouter(t, repo, orderService(t), query.PlanOptions{})

	rec := serve(router, http.MethodPost, "/payment-service/api/payments",
		`{"isPayed":true,"paymentStatus":"COMPLETED","order":{"orderId":900}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var payment dto.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	assert.Equal(t, 1, payment.PaymentID)
	require.NotNil(t, payment.Order)
	assert.Equal(t, "keyboard", payment.Order.OrderDesc)
	assert.Equal(t, []string{kafka.EventTypePaymentCreated, kafka.EventTypePaymentCompleted}, publisher.types)
	repo.AssertExpectations(t)
}

func TestCreatePaymentForUnknownOrder(t *testing.T) {
	repo := &mockPaymentRepository{}
	router, publisher := newRouter(t, repo, orderService(t), query.PlanOptions{})

	rec := serve(router, http.MethodPost, "/payment-service/api/payments", `{"orderId":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, publisher.types)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePaymentRejectsBadStatus(t *testing.T) {
	repo := &mockPaymentRepository{}
	router, _ := newRouter(t, repo, orderService(t), query.PlanOptions{})

	rec := serve(router, http.MethodPost, "/payment-service/api/payments", `{"orderId":900,"paymentStatus":"DONE"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPaymentBestEffortOrder(t *testing.T) {
	repo := &mockPaymentRepository{}
	repo.On("FindByID", mock.Anything, 3).
		Return(&domain.Payment{ID: 3, OrderID: 900, PaymentStatus: domain.StatusInProgress}, nil)
	router, _ := newRouter(t, repo, "http://127.0.0.1:1", query.PlanOptions{})

	rec := serve(router, http.MethodGet, "/payment-service/api/payments/3", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var payment dto.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	assert.Equal(t, 900, payment.OrderID)
	assert.Nil(t, payment.Order)
}

func TestGetPaymentRequiredOrderUnreachable(t *testing.T) {
	repo := &mockPaymentRepository{}
	repo.On("FindByID", mock.Anything, 3).
		Return(&domain.Payment{ID: 3, OrderID: 900}, nil)
	router, _ := newRouter(t, repo, "http://127.0.0.1:1", query.PlanOptions{OrderRequired: true})

	rec := serve(router, http.MethodGet, "/payment-service/api/payments/3", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetPaymentNotFound(t *testing.T) {
	repo := &mockPaymentRepository{}
	repo.On("FindByID", mock.Anything, 999).Return(nil, apperror.NotFound("Payment", 999))
	router, _ := newRouter(t, repo, orderService(t), query.PlanOptions{})

	rec := serve(router, http.MethodGet, "/payment-service/api/payments/999", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "999")
}

func TestDeletePayment(t *testing.T) {
	repo := &mockPaymentRepository{}
	repo.On("Delete", mock.Anything, 3).Return(nil)
	router, _ := newRouter(t, repo, orderService(t), query.PlanOptions{})

	rec := serve(router, http.MethodDelete, "/payment-service/api/payments/3", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
}
