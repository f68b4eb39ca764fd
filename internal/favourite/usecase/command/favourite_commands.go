package command

import (
	"context"
	"fmt"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

const source = "favourite-service"

// SaveFavouriteCommand adds a favourite or, with Update set, re-saves an
// existing one. A favourite has no mutable fields, so an update only
// confirms the key exists.
type SaveFavouriteCommand struct {
	Favourite dto.Favourite
	Update    bool
}

type SaveFavouriteHandler struct {
	favourites domain.FavouriteRepository
	engine     *query.FavouriteEngine
	publisher  kafka.EventPublisher
	now        func() time.Time
}

func NewSaveFavouriteHandler(favourites domain.FavouriteRepository, engine *query.FavouriteEngine, publisher kafka.EventPublisher) *SaveFavouriteHandler {
	return &SaveFavouriteHandler{favourites: favourites, engine: engine, publisher: publisher, now: time.Now}
}

func (h *SaveFavouriteHandler) Handle(ctx context.Context, cmd SaveFavouriteCommand) (*dto.Favourite, error) {
	userID, productID := cmd.Favourite.RefIDs()
	if userID <= 0 || productID <= 0 {
		return nil, apperror.Validationf("favourite must reference a user and a product")
	}

	likeDate := cmd.Favourite.LikeDate.Time
	if cmd.Update {
		if likeDate.IsZero() {
			return nil, apperror.Validationf("likeDate is required to address a favourite")
		}
		existing, err := h.favourites.FindByID(ctx, compositekey.NewFavouriteKey(userID, productID, likeDate))
		if err != nil {
			return nil, err
		}
		return h.engine.EnrichOne(ctx, *existing)
	}

	if likeDate.IsZero() {
		likeDate = h.now()
	}
	favourite := &domain.Favourite{
		UserID:    userID,
		ProductID: productID,
		LikeDate:  compositekey.Truncate(likeDate),
	}
	if err := h.favourites.Create(ctx, favourite); err != nil {
		return nil, fmt.Errorf("failed to add favourite: %w", err)
	}
	kafka.PublishBestEffort(ctx, h.publisher, source, kafka.EventTypeFavouriteAdded, favourite.Key().Encode(), favourite.ToDTO())
	return h.engine.EnrichOne(ctx, *favourite)
}

type DeleteFavouriteHandler struct {
	favourites domain.FavouriteRepository
	publisher  kafka.EventPublisher
}

func NewDeleteFavouriteHandler(favourites domain.FavouriteRepository, publisher kafka.EventPublisher) *DeleteFavouriteHandler {
	return &DeleteFavouriteHandler{favourites: favourites, publisher: publisher}
}

func (h *DeleteFavouriteHandler) Handle(ctx context.Context, key compositekey.FavouriteKey) error {
	if err := h.favourites.Delete(ctx, key); err != nil {
		return err
	}
	kafka.PublishBestEffort(ctx, h.publisher, source, kafka.EventTypeFavouriteRemoved, key.Encode(), dto.Favourite{
		UserID:    key.UserID,
		ProductID: key.ProductID,
		LikeDate:  compositekey.NewTimestamp(key.LikeDate),
	})
	return nil
}
