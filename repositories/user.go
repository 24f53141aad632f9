package repositories

import (
	"context"

	"github.com/agency-portal/models"
)

// UserRepository handles database operations for login accounts
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	result := conn(ctx).Where("email = ?", email).First(&user)
	return user, result.Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	result := conn(ctx).First(&user, "id = ?", id)
	return user, result.Error
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	result := conn(ctx).Create(&user)
	return user, result.Error
}

func (r *UserRepository) Update(ctx context.Context, user models.User) error {
	return conn(ctx).Save(&user).Error
}

// ExistsByEmail reports whether an account already uses the address
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := conn(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
