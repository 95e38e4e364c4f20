package http

import (
	"net/http"
	"strconv"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/logger"
	"fitsocial/services/interaction/internal/usecase"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase, logger *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		logger:             logger,
	}
}

type CommentRequest struct {
	Text     string  `json:"text" binding:"required"`
	ParentID *string `json:"parent_id"`
}

type EditCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func pagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	limit := defaultLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxLimit {
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

// LikePost godoc
// @Summary      Like a post
// @Description  Like a post (toggle - if already liked, removes like)
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /interactions/posts/{post_id}/like [post]
func (h *InteractionHandler) LikePost(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	liked, err := h.interactionUseCase.TogglePostLike(userID, postID)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to like post")
		return
	}

	if liked {
		c.JSON(http.StatusOK, gin.H{"message": "Post liked", "liked": true})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Post unliked", "liked": false})
	}
}

// GetLikesPreview godoc
// @Summary      Recent likers of a post
// @Tags         likes
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Param        limit query int false "Number of likers (default 3, max 50)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /interactions/posts/{post_id}/likes [get]
func (h *InteractionHandler) GetLikesPreview(c *gin.Context) {
	postID := c.Param("post_id")
	limit, _ := strconv.Atoi(c.Query("limit"))

	likers, err := h.interactionUseCase.GetLikesPreview(postID, limit)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to fetch likes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "likers": likers})
}

// GetComments godoc
// @Summary      List comments of a post
// @Description  Pinned comments first, then by engagement decayed by age. Replies are nested oldest first.
// @Tags         comments
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /interactions/posts/{post_id}/comments [get]
func (h *InteractionHandler) GetComments(c *gin.Context) {
	postID := c.Param("post_id")

	comments, err := h.interactionUseCase.GetComments(postID, c.GetString("user_id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body CommentRequest true "Comment"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /interactions/posts/{post_id}/comments [post]
func (h *InteractionHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.interactionUseCase.AddComment(c.GetString("user_id"), c.Param("post_id"), req.Text, req.ParentID)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// EditComment godoc
// @Summary      Edit a comment
// @Description  Allowed for the comment author and the post owner
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Param        request body EditCommentRequest true "New text"
// @Success      200  {object}  entity.Comment
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /interactions/comments/{id} [put]
func (h *InteractionHandler) EditComment(c *gin.Context) {
	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.interactionUseCase.EditComment(c.GetString("user_id"), c.Param("id"), req.Text)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to edit comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment and its replies
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /interactions/comments/{id} [delete]
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	if err := h.interactionUseCase.DeleteComment(c.GetString("user_id"), c.Param("id")); err != nil {
		apperror.Respond(c, h.logger, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// PinComment godoc
// @Summary      Pin a comment
// @Description  Only the post owner may pin, and only top-level comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /interactions/comments/{id}/pin [post]
func (h *InteractionHandler) PinComment(c *gin.Context) {
	h.setPinned(c, true)
}

// UnpinComment godoc
// @Summary      Unpin a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  entity.Comment
// @Failure      403  {object}  map[string]string
// @Router       /interactions/comments/{id}/pin [delete]
func (h *InteractionHandler) UnpinComment(c *gin.Context) {
	h.setPinned(c, false)
}

func (h *InteractionHandler) setPinned(c *gin.Context, pinned bool) {
	comment, err := h.interactionUseCase.SetCommentPinned(c.GetString("user_id"), c.Param("id"), pinned)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to update pin")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// LikeComment godoc
// @Summary      Like a comment (toggle)
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /interactions/comments/{id}/like [post]
func (h *InteractionHandler) LikeComment(c *gin.Context) {
	liked, err := h.interactionUseCase.ToggleCommentLike(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to like comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment_id": c.Param("id"), "liked": liked})
}

// Follow godoc
// @Summary      Follow a user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "User to follow"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /interactions/users/{user_id}/follow [post]
func (h *InteractionHandler) Follow(c *gin.Context) {
	if err := h.interactionUseCase.Follow(c.GetString("user_id"), c.Param("user_id")); err != nil {
		apperror.Respond(c, h.logger, err, "Failed to follow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Followed", "following": true})
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "User to unfollow"
// @Success      200  {object}  map[string]interface{}
// @Router       /interactions/users/{user_id}/follow [delete]
func (h *InteractionHandler) Unfollow(c *gin.Context) {
	if err := h.interactionUseCase.Unfollow(c.GetString("user_id"), c.Param("user_id")); err != nil {
		apperror.Respond(c, h.logger, err, "Failed to unfollow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed", "following": false})
}

// GetFollowStatus godoc
// @Summary      Whether the caller follows a user
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /interactions/users/{user_id}/follow [get]
func (h *InteractionHandler) GetFollowStatus(c *gin.Context) {
	following, err := h.interactionUseCase.IsFollowing(c.GetString("user_id"), c.Param("user_id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to check follow status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": c.Param("user_id"), "following": following})
}

// GetFollowers godoc
// @Summary      Followers of a user
// @Tags         follows
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /interactions/users/{user_id}/followers [get]
func (h *InteractionHandler) GetFollowers(c *gin.Context) {
	limit, offset := pagination(c, 20, 100)

	users, err := h.interactionUseCase.GetFollowers(c.Param("user_id"), limit, offset)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to fetch followers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users), "offset": offset})
}

// GetFollowing godoc
// @Summary      Users a user follows
// @Tags         follows
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /interactions/users/{user_id}/following [get]
func (h *InteractionHandler) GetFollowing(c *gin.Context) {
	limit, offset := pagination(c, 20, 100)

	users, err := h.interactionUseCase.GetFollowing(c.Param("user_id"), limit, offset)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to fetch following")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users), "offset": offset})
}

// GetSuggestions godoc
// @Summary      Users to follow
// @Description  Users the caller does not follow yet, most followed first
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of users (default 10, max 50)"
// @Success      200  {object}  map[string]interface{}
// @Router       /interactions/suggestions [get]
func (h *InteractionHandler) GetSuggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	users, err := h.interactionUseCase.GetSuggestions(c.GetString("user_id"), limit)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to fetch suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
