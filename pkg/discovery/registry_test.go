package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoundRobin(t *testing.T) {
	r := NewRegistry(map[string][]string{
		"order-service": {"http://a:8300/", " http://b:8300 "},
	})

	ctx := context.Background()
	var got []string
	for i := 0; i < 3; i++ {
		url, err := r.ResolveBaseURL(ctx, "ORDER-SERVICE")
		require.NoError(t, err)
		got = append(got, url)
	}

	assert.Equal(t, []string{"http://a:8300", "http://b:8300", "http://a:8300"}, got)
}

func TestRegistryUnknownService(t *testing.T) {
	r := NewRegistry(map[string][]string{"user-service": {}})

	_, err := r.ResolveBaseURL(context.Background(), "product-service")
	assert.ErrorIs(t, err, ErrServiceNotRegistered)

	_, err = r.ResolveBaseURL(context.Background(), "user-service")
	assert.ErrorIs(t, err, ErrServiceNotRegistered)
}

func TestRegistryCancelledContext(t *testing.T) {
	r := NewRegistry(map[string][]string{"user-service": {"http://u"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ResolveBaseURL(ctx, "user-service")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoundRobinWraps(t *testing.T) {
	rr := NewRoundRobin([]string{"a", "b"})
	assert.Equal(t, "a", rr.Next())
	assert.Equal(t, "b", rr.Next())
	assert.Equal(t, "a", rr.Next())
	assert.Equal(t, []string{"a", "b"}, rr.Instances())

	assert.Equal(t, "", NewRoundRobin(nil).Next())
}
