package persistent

import (
	"fitsocial/pkg/database"
	"fitsocial/services/interaction/internal/entity"
	"fitsocial/services/interaction/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	CreatePostLike(userID, postID string) (bool, error)
	DeletePostLike(userID, postID string) (bool, error)
	IsPostLiked(userID, postID string) (bool, error)
	ListPostLikers(postID string, limit int) ([]*entity.Liker, error)
	CreateCommentLike(userID, commentID string) (bool, error)
	DeleteCommentLike(userID, commentID string) (bool, error)
	IsCommentLiked(userID, commentID string) (bool, error)
	LikedCommentIDs(userID string, commentIDs []string) (map[string]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) CreatePostLike(userID, postID string) (bool, error) {
	var created bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = database.InsertAndBump(tx, &model.PostLikeModel{PostID: postID, UserID: userID}, "posts", postID, "likes_count")
		return err
	})
	return created, err
}

func (r *likeRepository) DeletePostLike(userID, postID string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		query := tx.Where("post_id = ? AND user_id = ?", postID, userID)
		deleted, err = database.DeleteAndDrop(tx, query, &model.PostLikeModel{}, "posts", postID, "likes_count")
		return err
	})
	return deleted, err
}

func (r *likeRepository) IsPostLiked(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostLikeModel{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) ListPostLikers(postID string, limit int) ([]*entity.Liker, error) {
	var rows []model.LikerRow
	err := r.db.Table("post_likes").
		Select("post_likes.user_id, users.username, users.avatar_url, post_likes.created_at").
		Joins("JOIN users ON users.id = post_likes.user_id").
		Where("post_likes.post_id = ?", postID).
		Order("post_likes.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	likers := make([]*entity.Liker, len(rows))
	for i, row := range rows {
		likers[i] = rowToLiker(row)
	}
	return likers, nil
}

func (r *likeRepository) CreateCommentLike(userID, commentID string) (bool, error) {
	var created bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = database.InsertAndBump(tx, &model.CommentLikeModel{CommentID: commentID, UserID: userID}, "post_comments", commentID, "likes_count")
		return err
	})
	return created, err
}

func (r *likeRepository) DeleteCommentLike(userID, commentID string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		query := tx.Where("comment_id = ? AND user_id = ?", commentID, userID)
		deleted, err = database.DeleteAndDrop(tx, query, &model.CommentLikeModel{}, "post_comments", commentID, "likes_count")
		return err
	})
	return deleted, err
}

func (r *likeRepository) IsCommentLiked(userID, commentID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommentLikeModel{}).Where("user_id = ? AND comment_id = ?", userID, commentID).Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) LikedCommentIDs(userID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []string
	err := r.db.Model(&model.CommentLikeModel{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
