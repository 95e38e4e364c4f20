package http

import (
	"net/http"
	"strconv"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/logger"
	"fitsocial/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type UpdatePostRequest struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

func optionalForm(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a post with up to 10 images or videos, optionally attached to a routine
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        text formData string true "Post text"
// @Param        title formData string false "Post title"
// @Param        routine_id formData string false "Attached routine"
// @Param        media formData file false "Image or video files (up to 10)"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	input := usecase.CreatePostInput{
		Text:      c.PostForm("text"),
		Title:     optionalForm(c, "title"),
		RoutineID: optionalForm(c, "routine_id"),
	}

	if form, err := c.MultipartForm(); err == nil {
		input.Media = form.File["media"]
	}

	post, err := h.postUseCase.CreatePost(userID, input)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetUserPosts godoc
// @Summary      Posts by a user
// @Description  Newest first
// @Tags         posts
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        limit query int false "Number of posts to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/user/{user_id} [get]
func (h *PostHandler) GetUserPosts(c *gin.Context) {
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

	posts, err := h.postUseCase.GetUserPosts(c.Param("user_id"), limit, offset)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts), "offset": offset})
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Only the author may update a post. A blank title removes it.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to change"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Param("id"), c.GetString("user_id"), req.Title, req.Text)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePostMedia godoc
// @Summary      Edit post media
// @Description  Only the author may edit media. New files are appended after the kept ones; a post holds at most 10.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        media formData file false "Image or video files to add"
// @Param        remove_media_ids formData []string false "Media ids to remove" collectionFormat(multi)
// @Param        order formData []string false "Every kept media id in display order" collectionFormat(multi)
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/media [put]
func (h *PostHandler) UpdatePostMedia(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}

	input := usecase.UpdateMediaInput{
		Add:    form.File["media"],
		Remove: form.Value["remove_media_ids"],
		Order:  form.Value["order"],
	}

	post, err := h.postUseCase.UpdatePostMedia(c.Param("id"), c.GetString("user_id"), input)
	if err != nil {
		apperror.Respond(c, h.logger, err, "Failed to update post media")
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Only the author may delete a post. Media objects are removed from storage.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUseCase.DeletePost(c.Param("id"), c.GetString("user_id")); err != nil {
		apperror.Respond(c, h.logger, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
