package compositekey

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
)

// FavouriteKey identifies one like of a product by a user at an instant.
type FavouriteKey struct {
	UserID    int
	ProductID int
	LikeDate  time.Time
}

func NewFavouriteKey(userID, productID int, likeDate time.Time) FavouriteKey {
	return FavouriteKey{UserID: userID, ProductID: productID, LikeDate: Truncate(likeDate)}
}

// Encode renders the key as /{userId}/{productId}/{percent-encoded likeDate}.
func (k FavouriteKey) Encode() string {
	return fmt.Sprintf("/%d/%d/%s", k.UserID, k.ProductID, url.QueryEscape(FormatTimestamp(k.LikeDate)))
}

func (k FavouriteKey) String() string {
	return fmt.Sprintf("(%d, %d, %s)", k.UserID, k.ProductID, FormatTimestamp(k.LikeDate))
}

// DecodeFavouriteKey parses the output of FavouriteKey.Encode.
func DecodeFavouriteKey(path string) (FavouriteKey, error) {
	segments, err := split(path, 3)
	if err != nil {
		return FavouriteKey{}, err
	}
	return ParseFavouriteKey(segments[0], segments[1], segments[2])
}

// ParseFavouriteKey builds a key from already separated segments. The
// likeDate segment may be percent-encoded or plain.
func ParseFavouriteKey(userID, productID, likeDate string) (FavouriteKey, error) {
	uid, err := parseID("userId", userID)
	if err != nil {
		return FavouriteKey{}, err
	}
	pid, err := parseID("productId", productID)
	if err != nil {
		return FavouriteKey{}, err
	}

	raw, err := url.QueryUnescape(likeDate)
	if err != nil {
		return FavouriteKey{}, apperror.InvalidKeyFormat("likeDate %q is not percent-encoded correctly", likeDate)
	}
	ts, err := ParseTimestamp(raw)
	if err != nil {
		return FavouriteKey{}, err
	}

	return FavouriteKey{UserID: uid, ProductID: pid, LikeDate: ts}, nil
}

// OrderItemKey identifies a product line inside an order.
type OrderItemKey struct {
	ProductID int
	OrderID   int
}

// Encode renders the key as /{productId}/{orderId}.
func (k OrderItemKey) Encode() string {
	return fmt.Sprintf("/%d/%d", k.ProductID, k.OrderID)
}

func (k OrderItemKey) String() string {
	return fmt.Sprintf("(%d, %d)", k.ProductID, k.OrderID)
}

func DecodeOrderItemKey(path string) (OrderItemKey, error) {
	segments, err := split(path, 2)
	if err != nil {
		return OrderItemKey{}, err
	}
	return ParseOrderItemKey(segments[0], segments[1])
}

func ParseOrderItemKey(productID, orderID string) (OrderItemKey, error) {
	pid, err := parseID("productId", productID)
	if err != nil {
		return OrderItemKey{}, err
	}
	oid, err := parseID("orderId", orderID)
	if err != nil {
		return OrderItemKey{}, err
	}
	return OrderItemKey{ProductID: pid, OrderID: oid}, nil
}

func split(path string, want int) ([]string, error) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) != want {
		return nil, apperror.InvalidKeyFormat("expected %d path segments, got %d in %q", want, len(segments), path)
	}
	return segments, nil
}

func parseID(name, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, apperror.InvalidKeyFormat("%s %q is not a valid id", name, s)
	}
	return id, nil
}
