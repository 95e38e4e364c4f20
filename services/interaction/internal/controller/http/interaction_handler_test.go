package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/logger"
	"fitsocial/services/interaction/internal/entity"
	"fitsocial/services/interaction/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockInteractionUseCase is a mock implementation of InteractionUseCase
type MockInteractionUseCase struct {
	mock.Mock
}

func (m *MockInteractionUseCase) TogglePostLike(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionUseCase) GetLikesPreview(postID string, limit int) ([]*entity.Liker, error) {
	args := m.Called(postID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Liker), args.Error(1)
}

func (m *MockInteractionUseCase) GetComments(postID, userID string) ([]*entity.Comment, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockInteractionUseCase) AddComment(userID, postID, text string, parentID *string) (*entity.Comment, error) {
	args := m.Called(userID, postID, text, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockInteractionUseCase) EditComment(userID, commentID, text string) (*entity.Comment, error) {
	args := m.Called(userID, commentID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockInteractionUseCase) DeleteComment(userID, commentID string) error {
	return m.Called(userID, commentID).Error(0)
}

func (m *MockInteractionUseCase) SetCommentPinned(userID, commentID string, pinned bool) (*entity.Comment, error) {
	args := m.Called(userID, commentID, pinned)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockInteractionUseCase) ToggleCommentLike(userID, commentID string) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionUseCase) Follow(followerID, followingID string) error {
	return m.Called(followerID, followingID).Error(0)
}

func (m *MockInteractionUseCase) Unfollow(followerID, followingID string) error {
	return m.Called(followerID, followingID).Error(0)
}

func (m *MockInteractionUseCase) IsFollowing(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionUseCase) GetFollowers(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

func (m *MockInteractionUseCase) GetFollowing(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

func (m *MockInteractionUseCase) GetSuggestions(userID string, limit int) ([]*entity.UserSummary, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

var _ usecase.InteractionUseCase = (*MockInteractionUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		h(c)
	}
}

func TestLikePost_Like(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", asUser("user-123", handler.LikePost))

	mockUseCase.On("TogglePostLike", "user-123", "post-123").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post liked", response["message"])
	assert.Equal(t, true, response["liked"])

	mockUseCase.AssertExpectations(t)
}

func TestLikePost_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("post x: %w", apperror.ErrNotFound), http.StatusNotFound},
		{"double tap", fmt.Errorf("%w: request already in progress", apperror.ErrConflict), http.StatusConflict},
		{"database", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockUseCase := new(MockInteractionUseCase)
			handler := NewInteractionHandler(mockUseCase, logger.New())
			router := setupTestRouter()
			router.POST("/posts/:post_id/like", asUser("user-123", handler.LikePost))

			mockUseCase.On("TogglePostLike", "user-123", "post-123").Return(false, tc.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/posts/post-123/like", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestGetComments_Anonymous(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:post_id/comments", handler.GetComments)

	comments := []*entity.Comment{
		{ID: "c2", Pinned: true},
		{ID: "c1", Replies: []*entity.Comment{{ID: "r1"}}},
	}
	mockUseCase.On("GetComments", "post-1", "").Return(comments, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/comments", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Comments []entity.Comment `json:"comments"`
		Count    int              `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "c2", response.Comments[0].ID)
	assert.Equal(t, "r1", response.Comments[1].Replies[0].ID)
}

func TestAddComment_Reply(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:post_id/comments", asUser("user-1", handler.AddComment))

	mockUseCase.On("AddComment", "user-1", "post-1", "same here", mock.MatchedBy(func(p *string) bool {
		return p != nil && *p == "c1"
	})).Return(&entity.Comment{ID: "new", Text: "same here"}, nil)

	body, _ := json.Marshal(map[string]string{"text": "same here", "parent_id": "c1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestAddComment_MissingText(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:post_id/comments", asUser("user-1", handler.AddComment))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/comments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEditComment_Forbidden(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/comments/:id", asUser("stranger", handler.EditComment))

	mockUseCase.On("EditComment", "stranger", "c1", "hijack").Return(nil, fmt.Errorf("%w: not allowed", apperror.ErrForbidden))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/comments/c1", bytes.NewBufferString(`{"text":"hijack"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPinAndUnpinComment(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/comments/:id/pin", asUser("owner", handler.PinComment))
	router.DELETE("/comments/:id/pin", asUser("owner", handler.UnpinComment))

	mockUseCase.On("SetCommentPinned", "owner", "c1", true).Return(&entity.Comment{ID: "c1", Pinned: true}, nil)
	mockUseCase.On("SetCommentPinned", "owner", "c1", false).Return(&entity.Comment{ID: "c1"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/comments/c1/pin", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pinned":true`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/comments/c1/pin", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pinned":false`)

	mockUseCase.AssertExpectations(t)
}

func TestDeleteComment_Success(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/comments/:id", asUser("author", handler.DeleteComment))

	mockUseCase.On("DeleteComment", "author", "c1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/comments/c1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestFollow_Self(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/users/:user_id/follow", asUser("u1", handler.Follow))

	mockUseCase.On("Follow", "u1", "u1").Return(fmt.Errorf("%w: cannot follow yourself", apperror.ErrInvalidInput))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/u1/follow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFollowers_Pagination(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	handler := NewInteractionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users/:user_id/followers", handler.GetFollowers)

	mockUseCase.On("GetFollowers", "u1", 20, 40).Return([]*entity.UserSummary{{ID: "u2"}}, nil)

	w := httptest.NewRecorder()
	// limit above the cap falls back to the default
	req, _ := http.NewRequest("GET", "/users/u1/followers?limit=1000&offset=40", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
