package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowModel struct {
	ID          string    `gorm:"type:uuid;primary_key"`
	FollowerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair"`
	FollowingID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index"`
	CreatedAt   time.Time
}

func (FollowModel) TableName() string {
	return "follows"
}

func (f *FollowModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

type UserRow struct {
	ID             string
	Username       string
	DisplayName    string
	AvatarURL      string
	FollowersCount int64
}
