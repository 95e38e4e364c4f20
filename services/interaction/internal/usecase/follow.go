package usecase

import (
	"context"
	"fmt"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/cache"
	"fitsocial/pkg/queue"
	"fitsocial/services/interaction/internal/entity"
)

const (
	defaultSuggestions = 10
	maxSuggestions     = 50
)

func (uc *interactionUseCase) Follow(followerID, followingID string) error {
	if followerID == followingID {
		return fmt.Errorf("%w: cannot follow yourself", apperror.ErrInvalidInput)
	}

	exists, err := uc.followRepo.UserExists(followingID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return fmt.Errorf("user %s: %w", followingID, apperror.ErrNotFound)
	}

	return cache.WithLock(context.Background(), uc.redisClient, uc.logger, fmt.Sprintf("follow:%s:%s", followerID, followingID), func() error {
		created, err := uc.followRepo.Create(followerID, followingID)
		if err != nil {
			return fmt.Errorf("failed to follow: %w", err)
		}
		if created {
			queue.Notify(uc.publisher, uc.logger, queue.Task{
				Type:        queue.TaskFollow,
				RecipientID: followingID,
				ActorID:     followerID,
				Priority:    4,
			})
		}
		return nil
	})
}

func (uc *interactionUseCase) Unfollow(followerID, followingID string) error {
	return cache.WithLock(context.Background(), uc.redisClient, uc.logger, fmt.Sprintf("follow:%s:%s", followerID, followingID), func() error {
		if _, err := uc.followRepo.Delete(followerID, followingID); err != nil {
			return fmt.Errorf("failed to unfollow: %w", err)
		}
		return nil
	})
}

func (uc *interactionUseCase) IsFollowing(followerID, followingID string) (bool, error) {
	return uc.followRepo.Exists(followerID, followingID)
}

func (uc *interactionUseCase) GetFollowers(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	return uc.followRepo.ListFollowers(userID, limit, offset)
}

func (uc *interactionUseCase) GetFollowing(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	return uc.followRepo.ListFollowing(userID, limit, offset)
}

func (uc *interactionUseCase) GetSuggestions(userID string, limit int) ([]*entity.UserSummary, error) {
	if limit <= 0 {
		limit = defaultSuggestions
	}
	if limit > maxSuggestions {
		limit = maxSuggestions
	}
	return uc.followRepo.Suggestions(userID, limit)
}
