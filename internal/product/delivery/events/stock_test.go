package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

type mockProductRepository struct {
	mock.Mock
	domain.ProductRepository
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, id, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func TestShippingCreatedDecrementsStock(t *testing.T) {
	repo := &mockProductRepository{}
	repo.On("DecrementStock", mock.Anything, 501, 3).Return(nil)
	listener := NewStockListener(command.NewUpdateStockHandler(repo))

	event, err := kafka.NewEvent("shipping-service", kafka.EventTypeShippingCreated, "/501/900",
		dto.OrderItem{ProductID: 501, OrderID: 900, OrderedQuantity: 3})
	require.NoError(t, err)

	require.NoError(t, listener.HandleShippingCreated(context.Background(), event))
	repo.AssertExpectations(t)
}

func TestShippingCreatedWithNestedProduct(t *testing.T) {
	repo := &mockProductRepository{}
	repo.On("DecrementStock", mock.Anything, 8, 1).Return(nil)
	listener := NewStockListener(command.NewUpdateStockHandler(repo))

	event, err := kafka.NewEvent("shipping-service", kafka.EventTypeShippingCreated, "/8/1",
		dto.OrderItem{Product: &dto.Product{ProductID: 8}, Order: &dto.Order{OrderID: 1}, OrderedQuantity: 1})
	require.NoError(t, err)

	require.NoError(t, listener.HandleShippingCreated(context.Background(), event))
	repo.AssertExpectations(t)
}

func TestShippingCreatedRejectsMissingProduct(t *testing.T) {
	repo := &mockProductRepository{}
	listener := NewStockListener(command.NewUpdateStockHandler(repo))

	event, err := kafka.NewEvent("shipping-service", kafka.EventTypeShippingCreated, "/0/1",
		dto.OrderItem{OrderID: 1, OrderedQuantity: 2})
	require.NoError(t, err)

	assert.Error(t, listener.HandleShippingCreated(context.Background(), event))
	repo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}
