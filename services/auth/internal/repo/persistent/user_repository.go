package persistent

import (
	"fitsocial/services/auth/internal/entity"
	"fitsocial/services/auth/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	UpdateProfile(id, displayName, bio string) error
	UpdateAvatar(id, avatarURL string) error
	GetStats(id string) (*model.UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy("email = ?", email)
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy("id = ?", id)
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	return r.getBy("LOWER(username) = LOWER(?)", username)
}

func (r *userRepository) getBy(query string, arg interface{}) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where(query, arg).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) UpdateProfile(id, displayName, bio string) error {
	return r.updates(id, map[string]interface{}{
		"display_name": displayName,
		"bio":          bio,
	})
}

func (r *userRepository) UpdateAvatar(id, avatarURL string) error {
	return r.updates(id, map[string]interface{}{"avatar_url": avatarURL})
}

func (r *userRepository) updates(id string, fields map[string]interface{}) error {
	result := r.db.Model(&model.UserModel{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) GetStats(id string) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = ?) AS followers_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = ?) AS following_count,
			(SELECT COUNT(*) FROM posts WHERE user_id = ?) AS posts_count`,
		id, id, id,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
