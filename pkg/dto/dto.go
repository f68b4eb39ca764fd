// Package dto holds the JSON representations exchanged between services
// and with clients. Nested references are tagged validate:"-" so that a
// stub such as {"order":{"orderId":7}} passes validation of its parent.
package dto

import (
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
)

// Collection is the list envelope every GET-all endpoint answers with
type Collection[T any] struct {
	Collection []T `json:"collection"`
}

func NewCollection[T any](items []T) Collection[T] {
	if items == nil {
		items = []T{}
	}
	return Collection[T]{Collection: items}
}

type User struct {
	UserID     int         `json:"userId,omitempty"`
	FirstName  string      `json:"firstName" validate:"max=255"`
	LastName   string      `json:"lastName" validate:"max=255"`
	ImageURL   string      `json:"imageUrl,omitempty"`
	Email      string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string      `json:"phone,omitempty"`
	Credential *Credential `json:"credential,omitempty" validate:"-"`
	Addresses  []Address   `json:"addresses,omitempty" validate:"-"`
}

type Credential struct {
	CredentialID            int    `json:"credentialId,omitempty"`
	Username                string `json:"username" validate:"required,max=255"`
	Password                string `json:"password,omitempty"`
	RoleBasedAuthority      string `json:"roleBasedAuthority,omitempty" validate:"omitempty,oneof=ROLE_USER ROLE_ADMIN"`
	IsEnabled               bool   `json:"isEnabled"`
	IsAccountNonExpired     bool   `json:"isAccountNonExpired"`
	IsAccountNonLocked      bool   `json:"isAccountNonLocked"`
	IsCredentialsNonExpired bool   `json:"isCredentialsNonExpired"`
	UserID                  int    `json:"userId,omitempty"`
	User                    *User  `json:"user,omitempty" validate:"-"`
}

type Address struct {
	AddressID   int    `json:"addressId,omitempty"`
	FullAddress string `json:"fullAddress" validate:"required"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city,omitempty"`
	UserID      int    `json:"userId,omitempty"`
	User        *User  `json:"user,omitempty" validate:"-"`
}

// Authentication is the login request body
type Authentication struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthenticatedUser is what the user service answers after a successful
// credential check
type AuthenticatedUser struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"roleBasedAuthority"`
}

// Token is the gateway's authentication response
type Token struct {
	JWTToken string `json:"jwtToken"`
}

type Category struct {
	CategoryID       int       `json:"categoryId,omitempty"`
	CategoryTitle    string    `json:"categoryTitle" validate:"required,max=255"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	ParentCategoryID int       `json:"parentCategoryId,omitempty"`
	ParentCategory   *Category `json:"parentCategory,omitempty" validate:"-"`
}

type Product struct {
	ProductID    int       `json:"productId,omitempty"`
	ProductTitle string    `json:"productTitle" validate:"required,max=255"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	SKU          string    `json:"sku" validate:"required,max=255"`
	PriceUnit    float64   `json:"priceUnit" validate:"gte=0"`
	Quantity     int       `json:"quantity" validate:"gte=0"`
	CategoryID   int       `json:"categoryId,omitempty"`
	Category     *Category `json:"category,omitempty" validate:"-"`
}

type Cart struct {
	CartID int   `json:"cartId,omitempty"`
	UserID int   `json:"userId,omitempty" validate:"gte=0"`
	User   *User `json:"user,omitempty" validate:"-"`
}

type Order struct {
	OrderID   int                    `json:"orderId,omitempty"`
	OrderDate compositekey.Timestamp `json:"orderDate,omitzero"`
	OrderDesc string                 `json:"orderDesc,omitempty"`
	OrderFee  float64                `json:"orderFee" validate:"gte=0"`
	CartID    int                    `json:"cartId,omitempty"`
	Cart      *Cart                  `json:"cart,omitempty" validate:"-"`
}

type Payment struct {
	PaymentID     int    `json:"paymentId,omitempty"`
	IsPayed       bool   `json:"isPayed"`
	PaymentStatus string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
	OrderID       int    `json:"orderId,omitempty"`
	Order         *Order `json:"order,omitempty" validate:"-"`
}

type OrderItem struct {
	ProductID       int      `json:"productId,omitempty"`
	OrderID         int      `json:"orderId,omitempty"`
	OrderedQuantity int      `json:"orderedQuantity" validate:"gte=0"`
	Product         *Product `json:"product,omitempty" validate:"-"`
	Order           *Order   `json:"order,omitempty" validate:"-"`
}

type Favourite struct {
	UserID    int                    `json:"userId,omitempty"`
	ProductID int                    `json:"productId,omitempty"`
	LikeDate  compositekey.Timestamp `json:"likeDate,omitzero"`
	User      *User                  `json:"user,omitempty" validate:"-"`
	Product   *Product               `json:"product,omitempty" validate:"-"`
}

// PaymentStatus values
const (
	PaymentNotStarted = "NOT_STARTED"
	PaymentInProgress = "IN_PROGRESS"
	PaymentCompleted  = "COMPLETED"
)

// RefOrderID returns the order id from the flat field or the nested stub
func (p Payment) RefOrderID() int {
	if p.OrderID != 0 {
		return p.OrderID
	}
	if p.Order != nil {
		return p.Order.OrderID
	}
	return 0
}

func (c Cart) RefUserID() int {
	if c.UserID != 0 {
		return c.UserID
	}
	if c.User != nil {
		return c.User.UserID
	}
	return 0
}

func (o Order) RefCartID() int {
	if o.CartID != 0 {
		return o.CartID
	}
	if o.Cart != nil {
		return o.Cart.CartID
	}
	return 0
}

func (p Product) RefCategoryID() int {
	if p.CategoryID != 0 {
		return p.CategoryID
	}
	if p.Category != nil {
		return p.Category.CategoryID
	}
	return 0
}

func (c Category) RefParentID() int {
	if c.ParentCategoryID != 0 {
		return c.ParentCategoryID
	}
	if c.ParentCategory != nil {
		return c.ParentCategory.CategoryID
	}
	return 0
}

func (c Credential) RefUserID() int {
	if c.UserID != 0 {
		return c.UserID
	}
	if c.User != nil {
		return c.User.UserID
	}
	return 0
}

func (a Address) RefUserID() int {
	if a.UserID != 0 {
		return a.UserID
	}
	if a.User != nil {
		return a.User.UserID
	}
	return 0
}

func (i OrderItem) RefIDs() (productID, orderID int) {
	productID, orderID = i.ProductID, i.OrderID
	if productID == 0 && i.Product != nil {
		productID = i.Product.ProductID
	}
	if orderID == 0 && i.Order != nil {
		orderID = i.Order.OrderID
	}
	return productID, orderID
}

func (f Favourite) RefIDs() (userID, productID int) {
	userID, productID = f.UserID, f.ProductID
	if userID == 0 && f.User != nil {
		userID = f.User.UserID
	}
	if productID == 0 && f.Product != nil {
		productID = f.Product.ProductID
	}
	return userID, productID
}
