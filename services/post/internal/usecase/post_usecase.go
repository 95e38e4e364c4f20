package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/cache"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/s3"
	"fitsocial/services/post/internal/entity"
	"fitsocial/services/post/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	MaxMediaPerPost = 10
	maxTextLength   = 5000
	maxTitleLength  = 200
)

type CreatePostInput struct {
	Text      string
	Title     *string
	RoutineID *string
	Media     []*multipart.FileHeader
}

// UpdateMediaInput edits a post's media. Removed ids must belong to the post;
// Order, when given, lists every kept media id in the new order. New files go
// after the kept ones.
type UpdateMediaInput struct {
	Add    []*multipart.FileHeader
	Remove []string
	Order  []string
}

type PostUseCase interface {
	CreatePost(userID string, input CreatePostInput) (*entity.Post, error)
	GetPost(postID, viewerID string) (*entity.Post, error)
	GetUserPosts(userID string, limit, offset int) ([]*entity.Post, error)
	UpdatePost(postID, userID string, title, text *string) (*entity.Post, error)
	UpdatePostMedia(postID, userID string, input UpdateMediaInput) (*entity.Post, error)
	DeletePost(postID, userID string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	storage     s3.Storage
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	storage s3.Storage,
	redisClient *redis.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		storage:     storage,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(userID string, input CreatePostInput) (*entity.Post, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", apperror.ErrInvalidInput)
	}
	if len([]rune(text)) > maxTextLength {
		return nil, fmt.Errorf("%w: text exceeds %d characters", apperror.ErrInvalidInput, maxTextLength)
	}
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if len(input.Media) > MaxMediaPerPost {
		return nil, fmt.Errorf("%w: maximum %d media files allowed per post", apperror.ErrInvalidInput, MaxMediaPerPost)
	}

	routineID := input.RoutineID
	if routineID != nil && *routineID == "" {
		routineID = nil
	}
	if routineID != nil {
		exists, err := uc.postRepo.RoutineExists(*routineID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up routine %s: %w", *routineID, apperror.NotFoundOr(err))
		}
		if !exists {
			return nil, fmt.Errorf("routine %s: %w", *routineID, apperror.ErrNotFound)
		}
	}

	// The ID is needed up front to scope media keys under the post.
	post := &entity.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Text:      text,
		RoutineID: routineID,
	}

	media, err := uc.uploadMedia(userID, post.ID, input.Media)
	if err != nil {
		return nil, err
	}
	post.Media = media

	if err := uc.postRepo.Create(post); err != nil {
		uc.removeMedia(media)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.invalidateExplore()
	return post, nil
}

func (uc *postUseCase) uploadMedia(userID, postID string, files []*multipart.FileHeader) ([]entity.PostMedia, error) {
	media := make([]entity.PostMedia, 0, len(files))

	for i, file := range files {
		contentType := file.Header.Get("Content-Type")
		mediaType, ok := mediaTypeOf(contentType)
		if !ok {
			uc.removeMedia(media)
			return nil, fmt.Errorf("%w: unsupported media type %q", apperror.ErrInvalidInput, contentType)
		}

		src, err := file.Open()
		if err != nil {
			uc.removeMedia(media)
			return nil, fmt.Errorf("failed to open file: %w", err)
		}

		url, err := uc.storage.UploadFile(s3.PostMediaKey(userID, postID, file.Filename), src, contentType)
		src.Close()
		if err != nil {
			uc.removeMedia(media)
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}

		media = append(media, entity.PostMedia{
			URL:       url,
			MediaType: mediaType,
			Position:  i,
		})
	}

	return media, nil
}

func (uc *postUseCase) removeMedia(media []entity.PostMedia) {
	for _, m := range media {
		key, ok := uc.storage.KeyFromURL(m.URL)
		if !ok {
			continue
		}
		if err := uc.storage.DeleteFile(key); err != nil {
			uc.logger.Warn("Failed to delete media object %s: %v", key, err)
		}
	}
}

func (uc *postUseCase) GetPost(postID, viewerID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, apperror.NotFoundOr(err))
	}

	if viewerID != "" {
		liked, err := uc.postRepo.IsLiked(viewerID, postID)
		if err != nil {
			uc.logger.Warn("Failed to check like status for post %s: %v", postID, err)
		}
		post.IsLiked = liked
	}

	return post, nil
}

func (uc *postUseCase) GetUserPosts(userID string, limit, offset int) ([]*entity.Post, error) {
	return uc.postRepo.GetByUserID(userID, limit, offset)
}

func (uc *postUseCase) UpdatePost(postID, userID string, title, text *string) (*entity.Post, error) {
	post, err := uc.ownedPost(postID, userID)
	if err != nil {
		return nil, err
	}

	if text != nil {
		t := strings.TrimSpace(*text)
		if t == "" {
			return nil, fmt.Errorf("%w: text cannot be empty", apperror.ErrInvalidInput)
		}
		if len([]rune(t)) > maxTextLength {
			return nil, fmt.Errorf("%w: text exceeds %d characters", apperror.ErrInvalidInput, maxTextLength)
		}
		post.Text = t
	}
	if title != nil {
		post.Title, err = normalizeTitle(title)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.postRepo.Update(postID, post.Title, post.Text); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) UpdatePostMedia(postID, userID string, input UpdateMediaInput) (*entity.Post, error) {
	if len(input.Add) == 0 && len(input.Remove) == 0 && len(input.Order) == 0 {
		return nil, fmt.Errorf("%w: no media changes requested", apperror.ErrInvalidInput)
	}

	post, err := uc.ownedPost(postID, userID)
	if err != nil {
		return nil, err
	}

	kept, removed, err := planMedia(post.Media, input.Remove, input.Order)
	if err != nil {
		return nil, err
	}
	if len(kept)+len(input.Add) > MaxMediaPerPost {
		return nil, fmt.Errorf("%w: maximum %d media files allowed per post", apperror.ErrInvalidInput, MaxMediaPerPost)
	}

	added, err := uc.uploadMedia(userID, postID, input.Add)
	if err != nil {
		return nil, err
	}

	media, err := uc.postRepo.ReplaceMedia(postID, mediaIDs(removed), append(kept, added...))
	if err != nil {
		uc.removeMedia(added)
		return nil, fmt.Errorf("failed to update post media: %w", err)
	}

	uc.removeMedia(removed)
	uc.invalidateExplore()

	post.Media = media
	return post, nil
}

// planMedia splits the current media into the rows to keep, in their new
// order, and the rows to remove.
func planMedia(current []entity.PostMedia, remove, order []string) (kept, removed []entity.PostMedia, err error) {
	byID := make(map[string]entity.PostMedia, len(current))
	for _, m := range current {
		byID[m.ID] = m
	}

	drop := make(map[string]bool, len(remove))
	for _, id := range remove {
		m, ok := byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("%w: media %s does not belong to this post", apperror.ErrInvalidInput, id)
		}
		if !drop[id] {
			drop[id] = true
			removed = append(removed, m)
		}
	}

	for _, m := range current {
		if !drop[m.ID] {
			kept = append(kept, m)
		}
	}

	if len(order) == 0 {
		return kept, removed, nil
	}
	if len(order) != len(kept) {
		return nil, nil, fmt.Errorf("%w: order must list every kept media id once", apperror.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(order))
	reordered := make([]entity.PostMedia, 0, len(order))
	for _, id := range order {
		m, ok := byID[id]
		if !ok || drop[id] || seen[id] {
			return nil, nil, fmt.Errorf("%w: order must list every kept media id once", apperror.ErrInvalidInput)
		}
		seen[id] = true
		reordered = append(reordered, m)
	}
	return reordered, removed, nil
}

func mediaIDs(media []entity.PostMedia) []string {
	ids := make([]string, len(media))
	for i, m := range media {
		ids[i] = m.ID
	}
	return ids
}

func (uc *postUseCase) DeletePost(postID, userID string) error {
	post, err := uc.ownedPost(postID, userID)
	if err != nil {
		return err
	}

	if err := uc.postRepo.Delete(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.removeMedia(post.Media)
	uc.invalidateExplore()
	return nil
}

func (uc *postUseCase) ownedPost(postID, userID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, apperror.NotFoundOr(err))
	}
	if post.UserID != userID {
		return nil, fmt.Errorf("%w: you can only modify your own posts", apperror.ErrForbidden)
	}
	return post, nil
}

func (uc *postUseCase) invalidateExplore() {
	if uc.redisClient == nil {
		return
	}
	if err := cache.BumpExploreVersion(context.Background(), uc.redisClient); err != nil {
		uc.logger.Warn("Failed to invalidate explore cache: %v", err)
	}
}

// normalizeTitle trims the title; a blank title clears it.
func normalizeTitle(title *string) (*string, error) {
	if title == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*title)
	if t == "" {
		return nil, nil
	}
	if len([]rune(t)) > maxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", apperror.ErrInvalidInput, maxTitleLength)
	}
	return &t, nil
}

func mediaTypeOf(contentType string) (entity.MediaType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return entity.MediaTypeImage, true
	case strings.HasPrefix(contentType, "video/"):
		return entity.MediaTypeVideo, true
	default:
		return "", false
	}
}
