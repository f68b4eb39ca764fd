package query

import (
	"context"
	"strconv"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
)

// FavouriteEngine enriches favourites with their user and product
type FavouriteEngine = enrich.Engine[compositekey.FavouriteKey, domain.Favourite, dto.Favourite]

func FavouritePlan() enrich.Plan[domain.Favourite, dto.Favourite] {
	return enrich.Plan[domain.Favourite, dto.Favourite]{
		Entity: "Favourite",
		Local:  domain.Favourite.ToDTO,
		Fields: []enrich.Field[domain.Favourite, dto.Favourite]{
			enrich.Ref("user", "user-service", "/api/users",
				func(f domain.Favourite) string { return idString(f.UserID) },
				func(d *dto.Favourite, u *dto.User) { d.User = u },
			),
			enrich.Ref("product", "product-service", "/api/products",
				func(f domain.Favourite) string { return idString(f.ProductID) },
				func(d *dto.Favourite, p *dto.Product) { d.Product = p },
			),
		},
	}
}

func NewFavouriteEngine(favourites domain.FavouriteRepository, lookup enrich.Lookup, opts enrich.Options) *FavouriteEngine {
	return enrich.NewEngine[compositekey.FavouriteKey, domain.Favourite, dto.Favourite](favourites, lookup, FavouritePlan(), opts)
}

func idString(id int) string {
	if id <= 0 {
		return ""
	}
	return strconv.Itoa(id)
}

type GetFavouriteHandler struct {
	engine *FavouriteEngine
}

func NewGetFavouriteHandler(engine *FavouriteEngine) *GetFavouriteHandler {
	return &GetFavouriteHandler{engine: engine}
}

func (h *GetFavouriteHandler) Handle(ctx context.Context, key compositekey.FavouriteKey) (*dto.Favourite, error) {
	return h.engine.FindByID(ctx, key)
}

type ListFavouritesHandler struct {
	engine *FavouriteEngine
}

func NewListFavouritesHandler(engine *FavouriteEngine) *ListFavouritesHandler {
	return &ListFavouritesHandler{engine: engine}
}

func (h *ListFavouritesHandler) Handle(ctx context.Context) ([]dto.Favourite, error) {
	return h.engine.FindAll(ctx)
}
