package domain

import (
	"context"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// Favourite is a like of a product by a user at an instant. The whole
// (UserID, ProductID, LikeDate) triple is the identity: the same user may
// like the same product at different instants.
type Favourite struct {
	UserID    int       `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	ProductID int       `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	LikeDate  time.Time `gorm:"column:like_date;primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (Favourite) TableName() string {
	return "favourites"
}

func (f Favourite) Key() compositekey.FavouriteKey {
	return compositekey.NewFavouriteKey(f.UserID, f.ProductID, f.LikeDate)
}

// FavouriteRepository is the composite-keyed store of favourites
type FavouriteRepository interface {
	Create(ctx context.Context, favourite *Favourite) error
	FindByID(ctx context.Context, key compositekey.FavouriteKey) (*Favourite, error)
	FindAll(ctx context.Context) ([]Favourite, error)
	Delete(ctx context.Context, key compositekey.FavouriteKey) error
}

func (f Favourite) ToDTO() dto.Favourite {
	return dto.Favourite{
		UserID:    f.UserID,
		ProductID: f.ProductID,
		LikeDate:  compositekey.NewTimestamp(f.LikeDate),
	}
}
