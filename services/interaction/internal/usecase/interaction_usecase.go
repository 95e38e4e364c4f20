package usecase

import (
	"fmt"
	"strings"
	"time"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/queue"
	"fitsocial/services/interaction/internal/entity"
	"fitsocial/services/interaction/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	maxCommentLength = 2000
)

type InteractionUseCase interface {
	TogglePostLike(userID, postID string) (bool, error)
	GetLikesPreview(postID string, limit int) ([]*entity.Liker, error)

	GetComments(postID, userID string) ([]*entity.Comment, error)
	AddComment(userID, postID, text string, parentID *string) (*entity.Comment, error)
	EditComment(userID, commentID, text string) (*entity.Comment, error)
	DeleteComment(userID, commentID string) error
	SetCommentPinned(userID, commentID string, pinned bool) (*entity.Comment, error)
	ToggleCommentLike(userID, commentID string) (bool, error)

	Follow(followerID, followingID string) error
	Unfollow(followerID, followingID string) error
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowers(userID string, limit, offset int) ([]*entity.UserSummary, error)
	GetFollowing(userID string, limit, offset int) ([]*entity.UserSummary, error)
	GetSuggestions(userID string, limit int) ([]*entity.UserSummary, error)
}

type interactionUseCase struct {
	postRepo    persistent.PostRepository
	likeRepo    persistent.LikeRepository
	commentRepo persistent.CommentRepository
	followRepo  persistent.FollowRepository
	redisClient *redis.Client
	publisher   queue.Publisher
	logger      *logger.Logger
	now         func() time.Time
}

func NewInteractionUseCase(
	postRepo persistent.PostRepository,
	likeRepo persistent.LikeRepository,
	commentRepo persistent.CommentRepository,
	followRepo persistent.FollowRepository,
	redisClient *redis.Client,
	publisher queue.Publisher,
	logger *logger.Logger,
) InteractionUseCase {
	return &interactionUseCase{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		redisClient: redisClient,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *interactionUseCase) postOwner(postID string) (string, error) {
	ownerID, err := uc.postRepo.GetOwnerID(postID)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", postID, apperror.NotFoundOr(err))
	}
	return ownerID, nil
}

func normalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", apperror.ErrInvalidInput)
	}
	if len([]rune(text)) > maxCommentLength {
		return "", fmt.Errorf("%w: text exceeds %d characters", apperror.ErrInvalidInput, maxCommentLength)
	}
	return text, nil
}
