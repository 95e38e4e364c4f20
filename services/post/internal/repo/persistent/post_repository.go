package persistent

import (
	"time"

	"fitsocial/services/post/internal/entity"
	"fitsocial/services/post/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetByUserID(userID string, limit, offset int) ([]*entity.Post, error)
	Update(id string, title *string, text string) error
	ReplaceMedia(postID string, removeIDs []string, media []entity.PostMedia) ([]entity.PostMedia, error)
	Delete(id string) error
	IsLiked(userID, postID string) (bool, error)
	RoutineExists(routineID string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		media := postModel.Media
		postModel.Media = nil

		if err := tx.Create(postModel).Error; err != nil {
			return err
		}

		for i := range media {
			media[i].PostID = postModel.ID
			media[i].Position = i
			if err := tx.Create(&media[i]).Error; err != nil {
				return err
			}
		}
		postModel.Media = media

		username, avatar := post.Username, post.AvatarURL
		*post = *ToPostEntity(postModel)
		post.Username, post.AvatarURL = username, avatar
		return nil
	})
}

func (r *postRepository) withMedia() *gorm.DB {
	return r.db.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("post_media.position ASC")
	})
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.withMedia().Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}

	posts := []*entity.Post{ToPostEntity(&postModel)}
	if err := r.attachAuthors(posts); err != nil {
		return nil, err
	}
	return posts[0], nil
}

func (r *postRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.withMedia().Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	if err := r.attachAuthors(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(id string, title *string, text string) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":      title,
		"text":       text,
		"updated_at": time.Now(),
	}).Error
}

// ReplaceMedia deletes removeIDs, then stores media in slice order: rows with
// an ID are repositioned, rows without one are inserted.
func (r *postRepository) ReplaceMedia(postID string, removeIDs []string, media []entity.PostMedia) ([]entity.PostMedia, error) {
	stored := make([]entity.PostMedia, len(media))

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if len(removeIDs) > 0 {
			if err := tx.Where("post_id = ? AND id IN ?", postID, removeIDs).Delete(&model.PostMediaModel{}).Error; err != nil {
				return err
			}
		}

		for i := range media {
			m := ToPostMediaModel(&media[i])
			m.PostID = postID
			m.Position = i

			if m.ID == "" {
				if err := tx.Create(m).Error; err != nil {
					return err
				}
			} else {
				res := tx.Model(&model.PostMediaModel{}).Where("id = ? AND post_id = ?", m.ID, postID).Update("position", i)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return gorm.ErrRecordNotFound
				}
			}
			stored[i] = ToPostMediaEntity(m)
		}

		return tx.Model(&model.PostModel{}).Where("id = ?", postID).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Delete removes the post; media, likes and comments go with it through
// ON DELETE CASCADE.
func (r *postRepository) Delete(id string) error {
	return r.db.Delete(&model.PostModel{}, "id = ?", id).Error
}

func (r *postRepository) IsLiked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Table("post_likes").Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) RoutineExists(routineID string) (bool, error) {
	var count int64
	err := r.db.Table("routines").Where("id = ?", routineID).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) attachAuthors(posts []*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}

	var rows []model.AuthorRow
	if err := r.db.Table("users").Select("id, username, avatar_url").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return err
	}

	authors := make(map[string]model.AuthorRow, len(rows))
	for _, row := range rows {
		authors[row.ID] = row
	}
	for _, p := range posts {
		if a, ok := authors[p.UserID]; ok {
			p.Username = a.Username
			p.AvatarURL = a.AvatarURL
		}
	}
	return nil
}
