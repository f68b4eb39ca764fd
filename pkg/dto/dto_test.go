package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
)

func TestCollectionNeverNull(t *testing.T) {
	raw, err := json.Marshal(NewCollection[Cart](nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"collection":[]}`, string(raw))
}

func TestNestedStubReferences(t *testing.T) {
	var payment Payment
	require.NoError(t, json.Unmarshal([]byte(`{"isPayed":false,"order":{"orderId":7001}}`), &payment))
	assert.Equal(t, 7001, payment.RefOrderID())

	var item OrderItem
	require.NoError(t, json.Unmarshal([]byte(`{"order":{"orderId":900},"product":{"productId":501},"orderedQuantity":1}`), &item))
	productID, orderID := item.RefIDs()
	assert.Equal(t, 501, productID)
	assert.Equal(t, 900, orderID)

	var fav Favourite
	require.NoError(t, json.Unmarshal([]byte(`{"userId":101,"productId":501,"likeDate":"01-01-2024__00:00:00:000000"}`), &fav))
	userID, productID := fav.RefIDs()
	assert.Equal(t, 101, userID)
	assert.Equal(t, 501, productID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), fav.LikeDate.Time)
}

func TestZeroTimestampOmitted(t *testing.T) {
	raw, err := json.Marshal(Order{OrderID: 1})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "orderDate")

	raw, err = json.Marshal(Order{OrderID: 1, OrderDate: compositekey.NewTimestamp(time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC))})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"orderDate":"06-05-2024__07:08:09:123456"`)
}
