package database

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "orderdb", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=orderdb sslmode=disable", cfg.DSN())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "order", 1))

	err := TranslateError(gorm.ErrRecordNotFound, "order", 999)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "999")

	err = TranslateError(&pq.Error{Code: "23505", Message: "duplicate key"}, "product", 1)
	kind, ok := apperror.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, apperror.KindConflict, kind)

	err = TranslateError(&pq.Error{Code: "23503", Detail: "Key (cart_id)=(4) is not present"}, "order", 1)
	kind, _ = apperror.KindOf(err)
	assert.Equal(t, apperror.KindValidation, kind)

	boom := errors.New("connection reset")
	err = TranslateError(boom, "order", 1)
	assert.ErrorIs(t, err, boom)
	_, ok = apperror.KindOf(err)
	assert.False(t, ok)
}
