package persistent

import (
	"fitsocial/services/feed/internal/entity"
	"fitsocial/services/feed/internal/model"

	"gorm.io/gorm"
)

type FeedRepository interface {
	// GetFollowingFeed returns posts by the user and everyone they follow, newest first.
	GetFollowingFeed(userID string, limit, offset int) ([]*entity.FeedPost, error)
	GetRecentPosts(limit int) ([]*entity.FeedPost, error)
	LikedPostIDs(userID string, postIDs []string) (map[string]bool, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) withMedia() *gorm.DB {
	return r.db.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("post_media.position ASC")
	})
}

func (r *feedRepository) GetFollowingFeed(userID string, limit, offset int) ([]*entity.FeedPost, error) {
	following := r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID)

	query := r.withMedia().
		Where("user_id = ? OR user_id IN (?)", userID, following).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset)
	return r.find(query)
}

func (r *feedRepository) GetRecentPosts(limit int) ([]*entity.FeedPost, error) {
	return r.find(r.withMedia().Order("created_at DESC").Limit(limit))
}

func (r *feedRepository) find(query *gorm.DB) ([]*entity.FeedPost, error) {
	var postModels []model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.FeedPost, len(postModels))
	for i := range postModels {
		posts[i] = ToFeedPost(&postModels[i])
	}
	if err := r.attachAuthors(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *feedRepository) LikedPostIDs(userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if userID == "" || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []string
	if err := r.db.Table("post_likes").
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *feedRepository) attachAuthors(posts []*entity.FeedPost) error {
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
