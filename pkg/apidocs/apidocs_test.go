package apidocs

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestFromRouterAndRegister(t *testing.T) {
	router := mux.NewRouter()
	api := router.PathPrefix("/favourite-service").Subrouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	api.HandleFunc("/api/favourites", noop).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/api/favourites/{key:.+}", noop).Methods(http.MethodDelete)

	ops := FromRouter(router)
	require.Len(t, ops, 3)
	assert.Equal(t, "favourites", ops[0].Tag)

	Register("favourite-service-test", "Favourite Service API", ops)
	doc, err := swag.ReadDoc("favourite-service-test")
	require.NoError(t, err)
	assert.Contains(t, doc, "/favourite-service/api/favourites/{key:.+}")
	assert.Contains(t, doc, "Favourite Service API")
}
