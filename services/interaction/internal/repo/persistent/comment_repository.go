package persistent

import (
	"time"

	"fitsocial/pkg/database"
	"fitsocial/services/interaction/internal/entity"
	"fitsocial/services/interaction/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	// ListByPost returns every comment of the post, replies included, oldest first.
	ListByPost(postID string) ([]*entity.Comment, error)
	UpdateText(id, text string) error
	// Delete removes the comment and its replies and returns how many rows went.
	Delete(comment *entity.Comment) (int64, error)
	SetPinned(id string, pinned bool) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(commentModel).Error; err != nil {
			return err
		}
		if err := database.Bump(tx, "posts", commentModel.PostID, "comments_count", 1); err != nil {
			return err
		}

		username, avatar := comment.Username, comment.AvatarURL
		*comment = *ToCommentEntity(commentModel)
		comment.Username, comment.AvatarURL = username, avatar
		return nil
	})
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var row model.CommentRow
	err := r.withAuthor().Where("post_comments.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return rowToComment(&row), nil
}

func (r *commentRepository) ListByPost(postID string) ([]*entity.Comment, error) {
	var rows []model.CommentRow
	err := r.withAuthor().
		Where("post_comments.post_id = ?", postID).
		Order("post_comments.created_at ASC, post_comments.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(rows))
	for i := range rows {
		comments[i] = rowToComment(&rows[i])
	}
	return comments, nil
}

func (r *commentRepository) UpdateText(id, text string) error {
	return r.db.Model(&model.CommentModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"text":       text,
		"updated_at": time.Now(),
	}).Error
}

func (r *commentRepository) Delete(comment *entity.Comment) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? OR parent_id = ?", comment.ID, comment.ID).Delete(&model.CommentModel{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		if removed == 0 {
			return nil
		}
		return database.Bump(tx, "posts", comment.PostID, "comments_count", -removed)
	})
	return removed, err
}

func (r *commentRepository) SetPinned(id string, pinned bool) error {
	var pinnedAt *time.Time
	if pinned {
		now := time.Now()
		pinnedAt = &now
	}
	return r.db.Model(&model.CommentModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"pinned":    pinned,
		"pinned_at": pinnedAt,
	}).Error
}

func (r *commentRepository) withAuthor() *gorm.DB {
	return r.db.Model(&model.CommentModel{}).
		Select("post_comments.*, users.username, users.avatar_url").
		Joins("LEFT JOIN users ON users.id = post_comments.user_id")
}
