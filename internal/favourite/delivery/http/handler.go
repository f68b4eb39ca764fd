package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

type CommandHandlers struct {
	SaveFavourite   *command.SaveFavouriteHandler
	DeleteFavourite *command.DeleteFavouriteHandler
}

type QueryHandlers struct {
	GetFavourite   *query.GetFavouriteHandler
	ListFavourites *query.ListFavouritesHandler
}

// FavouriteHandler handles HTTP requests for favourites
type FavouriteHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
}

func NewFavouriteHandler(commands *CommandHandlers, queries *QueryHandlers) *FavouriteHandler {
	return &FavouriteHandler{commands: commands, queries: queries}
}

// RegisterRoutes registers all favourite routes. A favourite is addressed
// by /{userId}/{productId}/{likeDate} with likeDate percent-encoded.
func (h *FavouriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/favourites", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/favourites", h.Save).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/favourites/{userId}/{productId}/{likeDate}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/favourites/{userId}/{productId}/{likeDate}", h.Delete).Methods(http.MethodDelete)
}

func pathKey(r *http.Request) (compositekey.FavouriteKey, error) {
	vars := mux.Vars(r)
	return compositekey.ParseFavouriteKey(vars["userId"], vars["productId"], vars["likeDate"])
}

// List handles GET /api/favourites
func (h *FavouriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favourites, err := h.queries.ListFavourites.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(favourites))
}

// Get handles GET /api/favourites/{userId}/{productId}/{likeDate}
func (h *FavouriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	favourite, err := h.queries.GetFavourite.Handle(r.Context(), key)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, favourite)
}

// Save handles POST and PUT /api/favourites
func (h *FavouriteHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.Favourite
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	favourite, err := h.commands.SaveFavourite.Handle(r.Context(), command.SaveFavouriteCommand{
		Favourite: req,
		Update:    r.Method == http.MethodPut,
	})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, favourite)
}

// Delete handles DELETE /api/favourites/{userId}/{productId}/{likeDate}
func (h *FavouriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteFavourite.Handle(r.Context(), key); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}
