package usecase

import (
	"fitsocial/pkg/queue"
	"fitsocial/services/interaction/internal/entity"
	"fitsocial/services/interaction/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) GetOwnerID(postID string) (string, error) {
	args := m.Called(postID)
	return args.String(0), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) CreatePostLike(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) DeletePostLike(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) IsPostLiked(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ListPostLikers(postID string, limit int) ([]*entity.Liker, error) {
	args := m.Called(postID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Liker), args.Error(1)
}

func (m *MockLikeRepository) CreateCommentLike(userID, commentID string) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) DeleteCommentLike(userID, commentID string) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) IsCommentLiked(userID, commentID string) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) LikedCommentIDs(userID string, commentIDs []string) (map[string]bool, error) {
	args := m.Called(userID, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*entity.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(postID string) ([]*entity.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateText(id, text string) error {
	return m.Called(id, text).Error(0)
}

func (m *MockCommentRepository) Delete(comment *entity.Comment) (int64, error) {
	args := m.Called(comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) SetPinned(id string, pinned bool) error {
	return m.Called(id, pinned).Error(0)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Delete(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Exists(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) UserExists(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(userID string, limit, offset int) ([]*entity.UserSummary, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

func (m *MockFollowRepository) Suggestions(userID string, limit int) ([]*entity.UserSummary, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishNotificationTask(task queue.Task) error {
	return m.Called(task).Error(0)
}

var (
	_ persistent.PostRepository    = (*MockPostRepository)(nil)
	_ persistent.LikeRepository    = (*MockLikeRepository)(nil)
	_ persistent.CommentRepository = (*MockCommentRepository)(nil)
	_ persistent.FollowRepository  = (*MockFollowRepository)(nil)
	_ queue.Publisher              = (*MockPublisher)(nil)
)
