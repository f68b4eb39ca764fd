package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

func newRepository(t *testing.T) (*GormOrderItemRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := database.OpenGorm(sqlDB)
	require.NoError(t, err)
	return NewGormOrderItemRepository(db), mock
}

func TestFindByCompositeKey(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM "order_items" WHERE (.*)product_id = \$1 AND order_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "order_id", "ordered_quantity"}).AddRow(501, 900, 3))

	item, err := repo.FindByID(context.Background(), compositekey.OrderItemKey{ProductID: 501, OrderID: 900})

	require.NoError(t, err)
	assert.Equal(t, 3, item.OrderedQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCompositeKeyMissing(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "order_id"}))

	_, err := repo.FindByID(context.Background(), compositekey.OrderItemKey{ProductID: 1, OrderID: 2})

	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "(1, 2)")
}

func TestUpdateTouchesQuantityOnly(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "order_items" SET "ordered_quantity"=\$1(.+)product_id = \$3 AND order_id = \$4`).
		WithArgs(7, sqlmock.AnyArg(), 501, 900).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &domain.OrderItem{ProductID: 501, OrderID: 900, OrderedQuantity: 7})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesExactRow(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "order_items" WHERE (.*)product_id = \$1 AND order_id = \$2`).
		WithArgs(501, 900).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), compositekey.OrderItemKey{ProductID: 501, OrderID: 900}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRow(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "order_items"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), compositekey.OrderItemKey{ProductID: 3, OrderID: 4})

	assert.True(t, apperror.IsNotFound(err))
}
