package repository

import (
	"context"

	"gorm.io/gorm"

	"contactapp/internal/model"
)

// UserRepository defines user persistence operations. Uniqueness of username
// and email is enforced by the database; a violated constraint surfaces as
// gorm.ErrDuplicatedKey.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ConfirmEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) (*model.User, error)
	UpdateAvatar(ctx context.Context, email, avatarURL string) (*model.User, error)
	Ping(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ConfirmEmail flips the verified flag for the given email. Missing users are
// a no-op, matching the idempotent verification contract.
func (r *userRepository) ConfirmEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("verified", true).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, email, passwordHash string) (*model.User, error) {
	return r.updateByEmail(ctx, email, "password_hash", passwordHash)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, email, avatarURL string) (*model.User, error) {
	return r.updateByEmail(ctx, email, "avatar_url", avatarURL)
}

func (r *userRepository) updateByEmail(ctx context.Context, email, column string, value interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&user).Update(column, value).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Ping probes database reachability for the health check.
func (r *userRepository) Ping(ctx context.Context) error {
	var one int
	return r.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}
