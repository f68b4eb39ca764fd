package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

// GormUserRepository implements UserRepository interface using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// AutoMigrate creates the user, credential and address tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Credential{}, &domain.Address{})
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := startSpan(ctx, "CreateUser", attribute.String("user.email", user.Email))
	err := database.TranslateError(r.db.WithContext(ctx).Omit("Credential", "Addresses").Create(user).Error, "User", user.ID)
	return endSpan(span, err)
}

func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, span := startSpan(ctx, "UpdateUser", attribute.Int("user.id", user.ID))
	err := database.TranslateError(r.db.WithContext(ctx).Omit("Credential", "Addresses").Save(user).Error, "User", user.ID)
	return endSpan(span, err)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	ctx, span := startSpan(ctx, "FindUserByID", attribute.Int("user.id", id))
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Credential").Preload("Addresses").First(&user, "user_id = ?", id).Error
	if err = endSpan(span, database.TranslateError(err, "User", id)); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Preload("Credential").Order("user_id").Find(&users).Error; err != nil {
		return nil, database.TranslateError(err, "User", "all")
	}
	return users, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var credential domain.Credential
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&credential).Error
	if err != nil {
		return nil, database.TranslateError(err, "User", username)
	}
	return r.FindByID(ctx, credential.UserRef)
}

func (r *GormUserRepository) Delete(ctx context.Context, id int) error {
	ctx, span := startSpan(ctx, "DeleteUser", attribute.Int("user.id", id))
	result := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&domain.User{})
	return endSpan(span, database.RowsOrNotFound(result, "User", id))
}

// GormCredentialRepository implements CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

func (r *GormCredentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	ctx, span := startSpan(ctx, "CreateCredential", attribute.String("credential.username", credential.Username))
	err := database.TranslateError(r.db.WithContext(ctx).Omit("User").Create(credential).Error, "Credential", credential.Username)
	return endSpan(span, err)
}

func (r *GormCredentialRepository) Update(ctx context.Context, credential *domain.Credential) error {
	err := r.db.WithContext(ctx).Omit("User").Save(credential).Error
	return database.TranslateError(err, "Credential", credential.ID)
}

func (r *GormCredentialRepository) FindByID(ctx context.Context, id int) (*domain.Credential, error) {
	var credential domain.Credential
	if err := r.db.WithContext(ctx).Preload("User").First(&credential, "credential_id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err, "Credential", id)
	}
	return &credential, nil
}

func (r *GormCredentialRepository) FindAll(ctx context.Context) ([]domain.Credential, error) {
	var credentials []domain.Credential
	if err := r.db.WithContext(ctx).Preload("User").Order("credential_id").Find(&credentials).Error; err != nil {
		return nil, database.TranslateError(err, "Credential", "all")
	}
	return credentials, nil
}

func (r *GormCredentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	ctx, span := startSpan(ctx, "FindCredentialByUsername", attribute.String("credential.username", username))
	var credential domain.Credential
	err := r.db.WithContext(ctx).Preload("User").Where("username = ?", username).First(&credential).Error
	if err = endSpan(span, database.TranslateError(err, "Credential", username)); err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *GormCredentialRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Where("credential_id = ?", id).Delete(&domain.Credential{})
	return database.RowsOrNotFound(result, "Credential", id)
}

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) Create(ctx context.Context, address *domain.Address) error {
	err := r.db.WithContext(ctx).Omit("User").Create(address).Error
	return database.TranslateError(err, "Address", address.ID)
}

func (r *GormAddressRepository) Update(ctx context.Context, address *domain.Address) error {
	err := r.db.WithContext(ctx).Omit("User").Save(address).Error
	return database.TranslateError(err, "Address", address.ID)
}

func (r *GormAddressRepository) FindByID(ctx context.Context, id int) (*domain.Address, error) {
	var address domain.Address
	if err := r.db.WithContext(ctx).Preload("User").First(&address, "address_id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err, "Address", id)
	}
	return &address, nil
}

func (r *GormAddressRepository) FindAll(ctx context.Context) ([]domain.Address, error) {
	var addresses []domain.Address
	if err := r.db.WithContext(ctx).Preload("User").Order("address_id").Find(&addresses).Error; err != nil {
		return nil, database.TranslateError(err, "Address", "all")
	}
	return addresses, nil
}

func (r *GormAddressRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Where("address_id = ?", id).Delete(&domain.Address{})
	return database.RowsOrNotFound(result, "Address", id)
}
