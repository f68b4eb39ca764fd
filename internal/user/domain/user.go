package domain

import (
	"context"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// Role types
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents the user entity (domain model)
type User struct {
	ID         int         `gorm:"column:user_id;primaryKey;autoIncrement"`
	FirstName  string      `gorm:"size:255"`
	LastName   string      `gorm:"size:255"`
	ImageURL   string      `gorm:"column:image_url;size:255"`
	Email      string      `gorm:"size:255"`
	Phone      string      `gorm:"size:255"`
	Credential *Credential `gorm:"foreignKey:UserRef;constraint:OnDelete:CASCADE"`
	Addresses  []Address   `gorm:"foreignKey:UserRef;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (User) TableName() string {
	return "users"
}

// Credential holds the login identity of a user (1:1)
type Credential struct {
	ID                      int    `gorm:"column:credential_id;primaryKey;autoIncrement"`
	UserRef                 int    `gorm:"column:user_id;uniqueIndex"`
	Username                string `gorm:"uniqueIndex;size:255;not null"`
	Password                string `gorm:"not null"`
	RoleBasedAuthority      string `gorm:"column:role;size:32;not null;default:'ROLE_USER'"`
	IsEnabled               bool   `gorm:"column:is_enabled"`
	IsAccountNonExpired     bool   `gorm:"column:is_account_non_expired"`
	IsAccountNonLocked      bool   `gorm:"column:is_account_non_locked"`
	IsCredentialsNonExpired bool   `gorm:"column:is_credentials_non_expired"`
	User                    *User  `gorm:"foreignKey:UserRef"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (Credential) TableName() string {
	return "credentials"
}

// IsAdmin checks if the credential carries the admin role
func (c *Credential) IsAdmin() bool {
	return c.RoleBasedAuthority == RoleAdmin
}

// Address belongs to one user (1:N)
type Address struct {
	ID          int    `gorm:"column:address_id;primaryKey;autoIncrement"`
	UserRef     int    `gorm:"column:user_id;index"`
	FullAddress string `gorm:"column:full_address;size:255"`
	PostalCode  string `gorm:"column:postal_code;size:255"`
	City        string `gorm:"size:255"`
	User        *User  `gorm:"foreignKey:UserRef"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Address) TableName() string {
	return "address"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Delete(ctx context.Context, id int) error
}

// CredentialRepository defines the contract for credential data access
type CredentialRepository interface {
	Create(ctx context.Context, credential *Credential) error
	Update(ctx context.Context, credential *Credential) error
	FindByID(ctx context.Context, id int) (*Credential, error)
	FindAll(ctx context.Context) ([]Credential, error)
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	Delete(ctx context.Context, id int) error
}

// AddressRepository defines the contract for address data access
type AddressRepository interface {
	Create(ctx context.Context, address *Address) error
	Update(ctx context.Context, address *Address) error
	FindByID(ctx context.Context, id int) (*Address, error)
	FindAll(ctx context.Context) ([]Address, error)
	Delete(ctx context.Context, id int) error
}

// ToDTO maps a user with whatever associations were loaded
func (u User) ToDTO() dto.User {
	out := dto.User{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImageURL:  u.ImageURL,
		Email:     u.Email,
		Phone:     u.Phone,
	}
	if u.Credential != nil {
		c := u.Credential.ToDTO()
		out.Credential = &c
	}
	for _, a := range u.Addresses {
		out.Addresses = append(out.Addresses, a.ToDTO())
	}
	return out
}

// ToDTO maps a credential; the password hash never leaves the service
func (c Credential) ToDTO() dto.Credential {
	out := dto.Credential{
		CredentialID:            c.ID,
		Username:                c.Username,
		RoleBasedAuthority:      c.RoleBasedAuthority,
		IsEnabled:               c.IsEnabled,
		IsAccountNonExpired:     c.IsAccountNonExpired,
		IsAccountNonLocked:      c.IsAccountNonLocked,
		IsCredentialsNonExpired: c.IsCredentialsNonExpired,
		UserID:                  c.UserRef,
	}
	if c.User != nil {
		u := dto.User{
			UserID:    c.User.ID,
			FirstName: c.User.FirstName,
			LastName:  c.User.LastName,
			ImageURL:  c.User.ImageURL,
			Email:     c.User.Email,
			Phone:     c.User.Phone,
		}
		out.User = &u
	}
	return out
}

func (a Address) ToDTO() dto.Address {
	out := dto.Address{
		AddressID:   a.ID,
		FullAddress: a.FullAddress,
		PostalCode:  a.PostalCode,
		City:        a.City,
		UserID:      a.UserRef,
	}
	if a.User != nil {
		u := dto.User{UserID: a.User.ID, FirstName: a.User.FirstName, LastName: a.User.LastName, Email: a.User.Email}
		out.User = &u
	}
	return out
}
