package http

import (
	"net/http"
	"strconv"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/logger"
	"fitsocial/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

func pagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}

// GetFollowingFeed godoc
// @Summary      Following feed
// @Description  Posts by the caller and the users they follow, newest first
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /feed/following [get]
func (h *FeedHandler) GetFollowingFeed(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, offset := pagination(c)

	posts, err := h.feedUseCase.GetFollowingFeed(userID, limit, offset)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to get feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "offset": offset})
}

// GetExplore godoc
// @Summary      Explore feed
// @Description  The latest posts ranked by likes and comments decayed by age
// @Tags         feed
// @Produce      json
// @Param        limit  query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /feed/explore [get]
func (h *FeedHandler) GetExplore(c *gin.Context) {
	limit, offset := pagination(c)

	posts, err := h.feedUseCase.GetExplore(c.GetString("user_id"), limit, offset)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to get explore feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "offset": offset})
}
