package persistent

import (
	"gorm.io/gorm"
)

type PostRepository interface {
	GetOwnerID(postID string) (string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetOwnerID(postID string) (string, error) {
	var owners []string
	if err := r.db.Table("posts").Where("id = ?", postID).Limit(1).Pluck("user_id", &owners).Error; err != nil {
		return "", err
	}
	if len(owners) == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return owners[0], nil
}
