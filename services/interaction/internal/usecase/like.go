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
	defaultLikesPreview = 3
	maxLikesPreview     = 50
)

func (uc *interactionUseCase) TogglePostLike(userID, postID string) (bool, error) {
	ownerID, err := uc.postOwner(postID)
	if err != nil {
		return false, err
	}

	var liked bool
	err = cache.WithLock(context.Background(), uc.redisClient, uc.logger, fmt.Sprintf("post_like:%s:%s", postID, userID), func() error {
		isLiked, err := uc.likeRepo.IsPostLiked(userID, postID)
		if err != nil {
			return fmt.Errorf("failed to check like status: %w", err)
		}

		if isLiked {
			if _, err := uc.likeRepo.DeletePostLike(userID, postID); err != nil {
				return fmt.Errorf("failed to unlike post: %w", err)
			}
			liked = false
			return nil
		}

		created, err := uc.likeRepo.CreatePostLike(userID, postID)
		if err != nil {
			return fmt.Errorf("failed to like post: %w", err)
		}
		liked = true
		if created {
			queue.Notify(uc.publisher, uc.logger, queue.Task{
				Type:        queue.TaskPostLike,
				RecipientID: ownerID,
				ActorID:     userID,
				PostID:      postID,
				Priority:    3,
			})
		}
		return nil
	})
	return liked, err
}

func (uc *interactionUseCase) GetLikesPreview(postID string, limit int) ([]*entity.Liker, error) {
	if _, err := uc.postOwner(postID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLikesPreview
	}
	if limit > maxLikesPreview {
		limit = maxLikesPreview
	}

	likers, err := uc.likeRepo.ListPostLikers(postID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list likers: %w", err)
	}
	return likers, nil
}

func (uc *interactionUseCase) ToggleCommentLike(userID, commentID string) (bool, error) {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return false, fmt.Errorf("comment %s: %w", commentID, apperror.NotFoundOr(err))
	}

	var liked bool
	err = cache.WithLock(context.Background(), uc.redisClient, uc.logger, fmt.Sprintf("comment_like:%s:%s", commentID, userID), func() error {
		isLiked, err := uc.likeRepo.IsCommentLiked(userID, commentID)
		if err != nil {
			return fmt.Errorf("failed to check like status: %w", err)
		}

		if isLiked {
			if _, err := uc.likeRepo.DeleteCommentLike(userID, commentID); err != nil {
				return fmt.Errorf("failed to unlike comment: %w", err)
			}
			liked = false
			return nil
		}

		created, err := uc.likeRepo.CreateCommentLike(userID, commentID)
		if err != nil {
			return fmt.Errorf("failed to like comment: %w", err)
		}
		liked = true
		if created {
			queue.Notify(uc.publisher, uc.logger, queue.Task{
				Type:        queue.TaskCommentLike,
				RecipientID: comment.UserID,
				ActorID:     userID,
				PostID:      comment.PostID,
				CommentID:   commentID,
				Priority:    2,
			})
		}
		return nil
	})
	return liked, err
}
