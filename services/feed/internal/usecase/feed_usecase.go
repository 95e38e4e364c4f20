package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitsocial/pkg/cache"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/ranking"
	"fitsocial/services/feed/internal/entity"
	"fitsocial/services/feed/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

type FeedUseCase interface {
	GetFollowingFeed(userID string, limit, offset int) ([]*entity.FeedPost, error)
	GetExplore(viewerID string, limit, offset int) ([]*entity.FeedPost, error)
}

type feedUseCase struct {
	feedRepo    persistent.FeedRepository
	redisClient *redis.Client
	logger      *logger.Logger
	pageSize    int
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewFeedUseCase(
	feedRepo persistent.FeedRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
	explorePageSize int,
	cacheTTL time.Duration,
) FeedUseCase {
	if explorePageSize <= 0 || explorePageSize > ranking.MaxPageSize {
		explorePageSize = ranking.MaxPageSize
	}
	return &feedUseCase{
		feedRepo:    feedRepo,
		redisClient: redisClient,
		logger:      logger,
		pageSize:    explorePageSize,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

func (uc *feedUseCase) GetFollowingFeed(userID string, limit, offset int) ([]*entity.FeedPost, error) {
	posts, err := uc.feedRepo.GetFollowingFeed(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load following feed: %w", err)
	}
	uc.fillLiked(userID, posts)
	return posts, nil
}

// GetExplore ranks the latest posts by hotness and returns the requested window.
// Pages are cached per explore version, without viewer state.
func (uc *feedUseCase) GetExplore(viewerID string, limit, offset int) ([]*entity.FeedPost, error) {
	ctx := context.Background()
	if limit <= 0 {
		limit = uc.pageSize
	}
	if offset < 0 {
		offset = 0
	}

	cacheKey := uc.exploreCacheKey(ctx, limit, offset)
	if cacheKey != "" {
		if cached, err := uc.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var posts []*entity.FeedPost
			if err := json.Unmarshal([]byte(cached), &posts); err == nil {
				uc.fillLiked(viewerID, posts)
				return posts, nil
			}
			uc.logger.Warn("Discarding unreadable explore cache entry %s", cacheKey)
		} else if err != redis.Nil {
			uc.logger.Warn("Failed to read explore cache: %v", err)
		}
	}

	recent, err := uc.feedRepo.GetRecentPosts(uc.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent posts: %w", err)
	}

	now := uc.now()
	for _, p := range recent {
		p.Hotness = ranking.PostHotness(entity.PostSignals(p), now)
	}
	ranked := ranking.RankPosts(recent, now, entity.PostSignals)
	page := window(ranked, limit, offset)

	if cacheKey != "" {
		if body, err := json.Marshal(page); err == nil {
			if err := uc.redisClient.Set(ctx, cacheKey, body, uc.cacheTTL).Err(); err != nil {
				uc.logger.Warn("Failed to cache explore page: %v", err)
			}
		}
	}

	uc.fillLiked(viewerID, page)
	return page, nil
}

// exploreCacheKey returns "" when caching is unavailable.
func (uc *feedUseCase) exploreCacheKey(ctx context.Context, limit, offset int) string {
	if uc.redisClient == nil || uc.cacheTTL <= 0 {
		return ""
	}
	version, err := cache.ExploreVersion(ctx, uc.redisClient)
	if err != nil {
		uc.logger.Warn("Failed to read explore version: %v", err)
		return ""
	}
	return fmt.Sprintf("feed:explore:v%d:%d:%d", version, limit, offset)
}

func window(posts []*entity.FeedPost, limit, offset int) []*entity.FeedPost {
	if limit <= 0 || offset < 0 || offset >= len(posts) {
		return []*entity.FeedPost{}
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

func (uc *feedUseCase) fillLiked(viewerID string, posts []*entity.FeedPost) {
	for _, p := range posts {
		p.IsLiked = false
	}
	if viewerID == "" || len(posts) == 0 {
		return
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	liked, err := uc.feedRepo.LikedPostIDs(viewerID, ids)
	if err != nil {
		uc.logger.Warn("Failed to load like state for %s: %v", viewerID, err)
		return
	}
	for _, p := range posts {
		p.IsLiked = liked[p.ID]
	}
}
