package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

func newRepository(t *testing.T) (*GormFavouriteRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := database.OpenGorm(sqlDB)
	require.NoError(t, err)
	return NewGormFavouriteRepository(db), mock
}

func TestDeleteMatchesWholeKey(t *testing.T) {
	repo, mock := newRepository(t)
	key, err := compositekey.ParseFavouriteKey("101", "501", "01-01-2024__00:00:00:000000")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "favourites" WHERE (.*)user_id = \$1 AND product_id = \$2 AND like_date = \$3`).
		WithArgs(101, 501, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), key))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOtherInstantIsNotFound(t *testing.T) {
	repo, mock := newRepository(t)
	key := compositekey.NewFavouriteKey(101, 501, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "favourites"`).
		WithArgs(101, 501, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), key)

	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "02-01-2024__00:00:00:000000")
}

func TestFindAllFavourites(t *testing.T) {
	repo, mock := newRepository(t)
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "favourites" ORDER BY user_id, product_id, like_date`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "product_id", "like_date"}).
			AddRow(101, 501, first).
			AddRow(101, 501, first.Add(time.Hour)))

	favourites, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, favourites, 2)
	assert.NotEqual(t, favourites[0].Key(), favourites[1].Key())
}
