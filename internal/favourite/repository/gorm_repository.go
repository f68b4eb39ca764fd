package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

const (
	entity   = "Favourite"
	keyWhere = "user_id = ? AND product_id = ? AND like_date = ?"
)

// AutoMigrate creates the favourites table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Favourite{})
}

// GormFavouriteRepository implements FavouriteRepository using GORM
type GormFavouriteRepository struct {
	db *gorm.DB
}

func NewGormFavouriteRepository(db *gorm.DB) *GormFavouriteRepository {
	return &GormFavouriteRepository{db: db}
}

func keyAttributes(key compositekey.FavouriteKey) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("favourite.user_id", key.UserID),
		attribute.Int("favourite.product_id", key.ProductID),
		attribute.String("favourite.like_date", compositekey.FormatTimestamp(key.LikeDate)),
	}
}

func (r *GormFavouriteRepository) Create(ctx context.Context, favourite *domain.Favourite) error {
	favourite.LikeDate = compositekey.Truncate(favourite.LikeDate)
	ctx, span := startSpan(ctx, "CreateFavourite", keyAttributes(favourite.Key())...)
	err := r.db.WithContext(ctx).Create(favourite).Error
	return endSpan(span, database.TranslateError(err, entity, favourite.Key()))
}

func (r *GormFavouriteRepository) FindByID(ctx context.Context, key compositekey.FavouriteKey) (*domain.Favourite, error) {
	ctx, span := startSpan(ctx, "FindFavourite", keyAttributes(key)...)
	var favourite domain.Favourite
	err := r.db.WithContext(ctx).
		Where(keyWhere, key.UserID, key.ProductID, key.LikeDate.UTC()).
		First(&favourite).Error
	if err = endSpan(span, database.TranslateError(err, entity, key)); err != nil {
		return nil, err
	}
	return &favourite, nil
}

func (r *GormFavouriteRepository) FindAll(ctx context.Context) ([]domain.Favourite, error) {
	var favourites []domain.Favourite
	err := r.db.WithContext(ctx).Order("user_id, product_id, like_date").Find(&favourites).Error
	if err != nil {
		return nil, database.TranslateError(err, entity, "all")
	}
	return favourites, nil
}

// Delete removes exactly the row matching all three key components
func (r *GormFavouriteRepository) Delete(ctx context.Context, key compositekey.FavouriteKey) error {
	ctx, span := startSpan(ctx, "DeleteFavourite", keyAttributes(key)...)
	result := r.db.WithContext(ctx).
		Where(keyWhere, key.UserID, key.ProductID, key.LikeDate.UTC()).
		Delete(&domain.Favourite{})
	return endSpan(span, database.RowsOrNotFound(result, entity, key))
}
