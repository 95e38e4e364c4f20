package persistent

import (
	"fitsocial/pkg/database"
	"fitsocial/services/interaction/internal/entity"
	"fitsocial/services/interaction/internal/model"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(followerID, followingID string) (bool, error)
	Delete(followerID, followingID string) (bool, error)
	Exists(followerID, followingID string) (bool, error)
	UserExists(userID string) (bool, error)
	ListFollowers(userID string, limit, offset int) ([]*entity.UserSummary, error)
	ListFollowing(userID string, limit, offset int) ([]*entity.UserSummary, error)
	Suggestions(userID string, limit int) ([]*entity.UserSummary, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

const followersCountSQL = "(SELECT COUNT(*) FROM follows f WHERE f.following_id = users.id) AS followers_count"

func (r *followRepository) Create(followerID, followingID string) (bool, error) {
	return database.InsertAndBump(r.db, &model.FollowModel{FollowerID: followerID, FollowingID: followingID}, "", "", "")
}

func (r *followRepository) Delete(followerID, followingID string) (bool, error) {
	query := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID)
	return database.DeleteAndDrop(r.db, query, &model.FollowModel{}, "", "", "")
}

func (r *followRepository) Exists(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) UserExists(userID string) (bool, error) {
	var count int64
	err := r.db.Table("users").Where("id = ? AND deleted_at IS NULL", userID).Count(&count).Error
	return count > 0, err
}

func (r *followRepository) ListFollowers(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	return r.listUsers(
		r.userQuery().
			Joins("JOIN follows ON follows.follower_id = users.id").
			Where("follows.following_id = ?", userID).
			Order("follows.created_at DESC"),
		limit, offset,
	)
}

func (r *followRepository) ListFollowing(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	return r.listUsers(
		r.userQuery().
			Joins("JOIN follows ON follows.following_id = users.id").
			Where("follows.follower_id = ?", userID).
			Order("follows.created_at DESC"),
		limit, offset,
	)
}

func (r *followRepository) Suggestions(userID string, limit int) ([]*entity.UserSummary, error) {
	return r.listUsers(
		r.userQuery().
			Where("users.id <> ?", userID).
			Where("users.id NOT IN (?)", r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID)).
			Order("followers_count DESC, users.created_at DESC"),
		limit, 0,
	)
}

func (r *followRepository) userQuery() *gorm.DB {
	return r.db.Table("users").
		Select("users.id, users.username, users.display_name, users.avatar_url, " + followersCountSQL).
		Where("users.deleted_at IS NULL")
}

func (r *followRepository) listUsers(query *gorm.DB, limit, offset int) ([]*entity.UserSummary, error) {
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []model.UserRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.UserSummary, len(rows))
	for i, row := range rows {
		users[i] = rowToUserSummary(row)
	}
	return users, nil
}
