package persistent

import (
	"fitsocial/services/notification/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetUsername(userID string) (string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUsername(userID string) (string, error) {
	var userModel model.UserModel
	if err := r.db.Select("id", "username").Where("id = ?", userID).First(&userModel).Error; err != nil {
		return "", err
	}
	return userModel.Username, nil
}
