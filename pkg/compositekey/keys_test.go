package compositekey

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01-01-2024__00:00:00:000000", FormatTimestamp(ts))

	ts = time.Date(2023, time.June, 10, 9, 30, 5, 123456789, time.UTC)
	assert.Equal(t, "10-06-2023__09:30:05:123456", FormatTimestamp(ts))
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("10-06-2023__09:30:05:000042")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2023, time.June, 10, 9, 30, 5, 42000, time.UTC)))
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	inputs := []string{
		"",
		"2024-01-01T00:00:00Z",
		"01-01-2024__00:00:00.000000",
		"01-01-2024__00:00:00:00000x",
		"32-01-2024__00:00:00:000000",
		"01-13-2024__00:00:00:000000",
		"01-01-2024__00:00:00:0000000",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimestamp(in)
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidKeyFormat(err))
		})
	}
}

func TestFavouriteKeyEncode(t *testing.T) {
	k := NewFavouriteKey(101, 501, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "/101/501/01-01-2024__00%3A00%3A00%3A000000", k.Encode())
}

func TestFavouriteKeyRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, time.December, 31, 23, 59, 59, 999999000, time.UTC),
		time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, time.December, 31, 23, 59, 59, 1000, time.UTC),
		time.Date(2023, time.June, 10, 9, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
		time.Now(),
	}

	for _, instant := range instants {
		k := NewFavouriteKey(7, 42, instant)
		decoded, err := DecodeFavouriteKey(k.Encode())
		require.NoError(t, err)
		assert.Equal(t, k, decoded)
		assert.Equal(t, k.Encode(), decoded.Encode())
	}
}

func TestParseFavouriteKeyAcceptsPlainTimestamp(t *testing.T) {
	k, err := ParseFavouriteKey("101", "501", "01-01-2024__00:00:00:000000")
	require.NoError(t, err)
	assert.Equal(t, 101, k.UserID)
	assert.Equal(t, 501, k.ProductID)
	assert.True(t, k.LikeDate.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDecodeFavouriteKeyErrors(t *testing.T) {
	paths := []string{
		"/101/501",
		"/101/501/01-01-2024__00:00:00:000000/extra",
		"/abc/501/01-01-2024__00:00:00:000000",
		"/101/-1/01-01-2024__00:00:00:000000",
		"/101/501/yesterday",
		"/101/501/%zz",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			_, err := DecodeFavouriteKey(p)
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidKeyFormat(err))
		})
	}
}

func TestOrderItemKeyRoundTrip(t *testing.T) {
	k := OrderItemKey{ProductID: 501, OrderID: 900}
	assert.Equal(t, "/501/900", k.Encode())

	decoded, err := DecodeOrderItemKey(k.Encode())
	require.NoError(t, err)
	assert.Equal(t, k, decoded)

	_, err = DecodeOrderItemKey("/501")
	assert.True(t, apperror.IsInvalidKeyFormat(err))

	_, err = DecodeOrderItemKey("/501/x")
	assert.True(t, apperror.IsInvalidKeyFormat(err))
}

func TestTimestampJSON(t *testing.T) {
	type payload struct {
		LikeDate Timestamp `json:"likeDate,omitzero"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"likeDate":"01-01-2024__00:00:00:000000"}`), &p))
	assert.Equal(t, "01-01-2024__00:00:00:000000", p.LikeDate.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"likeDate":"01-01-2024__00:00:00:000000"}`, string(out))

	out, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))

	err = json.Unmarshal([]byte(`{"likeDate":"2024-01-01"}`), &p)
	assert.True(t, apperror.IsInvalidKeyFormat(err))
}
