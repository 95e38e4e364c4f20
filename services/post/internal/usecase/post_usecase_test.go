package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/cache"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/s3"
	"fitsocial/services/post/internal/entity"
	"fitsocial/services/post/internal/repo/persistent"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *entity.Post) error {
	return m.Called(post).Error(0)
}

func (m *MockPostRepository) GetByID(id string) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Update(id string, title *string, text string) error {
	return m.Called(id, title, text).Error(0)
}

func (m *MockPostRepository) ReplaceMedia(postID string, removeIDs []string, media []entity.PostMedia) ([]entity.PostMedia, error) {
	args := m.Called(postID, removeIDs, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PostMedia), args.Error(1)
}

func (m *MockPostRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockPostRepository) IsLiked(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) RoutineExists(routineID string) (bool, error) {
	args := m.Called(routineID)
	return args.Bool(0), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteFile(key string) error {
	return m.Called(key).Error(0)
}

func (m *MockStorage) KeyFromURL(url string) (string, bool) {
	const base = "http://minio:9000/media/"
	if !strings.HasPrefix(url, base) {
		return "", false
	}
	return strings.TrimPrefix(url, base), true
}

var (
	_ persistent.PostRepository = (*MockPostRepository)(nil)
	_ s3.Storage                = (*MockStorage)(nil)
)

type upload struct {
	name        string
	contentType string
}

func fileHeaders(t *testing.T, uploads ...upload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`, u.name))
		h.Set("Content-Type", u.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["media"]
}

func newTestUseCase(t *testing.T) (PostUseCase, *MockPostRepository, *MockStorage, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := new(MockPostRepository)
	storage := new(MockStorage)
	return NewPostUseCase(repo, storage, client, logger.New()), repo, storage, s
}

func strPtr(s string) *string { return &s }

func TestCreatePost_UploadsMediaUnderPostScope(t *testing.T) {
	uc, repo, storage, s := newTestUseCase(t)

	files := fileHeaders(t, upload{"squat.JPG", "image/jpeg"}, upload{"set.mp4", "video/mp4"})

	storage.On("UploadFile", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "posts/user-1/") && strings.HasSuffix(key, ".jpg")
	}), mock.Anything, "image/jpeg").Return("http://minio:9000/media/posts/user-1/p/a.jpg", nil)
	storage.On("UploadFile", mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".mp4")
	}), mock.Anything, "video/mp4").Return("http://minio:9000/media/posts/user-1/p/b.mp4", nil)
	repo.On("RoutineExists", "routine-1").Return(true, nil)
	repo.On("Create", mock.MatchedBy(func(p *entity.Post) bool {
		return p.Text == "Heavy squats" && len(p.Media) == 2 &&
			p.Media[0].MediaType == entity.MediaTypeImage && p.Media[1].MediaType == entity.MediaTypeVideo
	})).Return(nil)

	post, err := uc.CreatePost("user-1", CreatePostInput{
		Text:      " Heavy squats ",
		Title:     strPtr("Leg day"),
		RoutineID: strPtr("routine-1"),
		Media:     files,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Leg day", *post.Title)

	repo.AssertExpectations(t)
	storage.AssertExpectations(t)

	v, err := s.Get(cache.ExploreVersionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestCreatePost_Validation(t *testing.T) {
	uc, repo, _, _ := newTestUseCase(t)

	_, err := uc.CreatePost("user-1", CreatePostInput{Text: "  "})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.CreatePost("user-1", CreatePostInput{Text: "hi", Title: strPtr(strings.Repeat("t", 201))})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	many := make([]upload, MaxMediaPerPost+1)
	for i := range many {
		many[i] = upload{fmt.Sprintf("%d.png", i), "image/png"}
	}
	_, err = uc.CreatePost("user-1", CreatePostInput{Text: "hi", Media: fileHeaders(t, many...)})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	repo.On("RoutineExists", "nope").Return(false, nil)
	_, err = uc.CreatePost("user-1", CreatePostInput{Text: "hi", RoutineID: strPtr("nope")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	repo.On("RoutineExists", "abc").Return(false, fmt.Errorf("count: %w", &pgconn.PgError{Code: "22P02"}))
	_, err = uc.CreatePost("user-1", CreatePostInput{Text: "hi", RoutineID: strPtr("abc")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreatePost_UnsupportedMediaCleansUp(t *testing.T) {
	uc, repo, storage, _ := newTestUseCase(t)

	files := fileHeaders(t, upload{"a.png", "image/png"}, upload{"notes.pdf", "application/pdf"})
	storage.On("UploadFile", mock.Anything, mock.Anything, "image/png").Return("http://minio:9000/media/posts/u/p/a.png", nil)
	storage.On("DeleteFile", "posts/u/p/a.png").Return(nil)

	_, err := uc.CreatePost("user-1", CreatePostInput{Text: "hi", Media: files})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	storage.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreatePost_RepositoryFailureRemovesUploads(t *testing.T) {
	uc, repo, storage, _ := newTestUseCase(t)

	storage.On("UploadFile", mock.Anything, mock.Anything, "image/png").Return("http://minio:9000/media/posts/u/p/a.png", nil)
	storage.On("DeleteFile", "posts/u/p/a.png").Return(nil)
	repo.On("Create", mock.Anything).Return(errors.New("insert failed"))

	_, err := uc.CreatePost("user-1", CreatePostInput{Text: "hi", Media: fileHeaders(t, upload{"a.png", "image/png"})})
	assert.Error(t, err)

	storage.AssertExpectations(t)
}

func TestGetPost(t *testing.T) {
	uc, repo, _, _ := newTestUseCase(t)

	repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author"}, nil)
	repo.On("IsLiked", "viewer", "p1").Return(true, nil)
	repo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	post, err := uc.GetPost("p1", "viewer")
	require.NoError(t, err)
	assert.True(t, post.IsLiked)

	_, err = uc.GetPost("missing", "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdatePost(t *testing.T) {
	t.Run("author updates text and clears title", func(t *testing.T) {
		uc, repo, _, _ := newTestUseCase(t)
		repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author", Title: strPtr("old"), Text: "old"}, nil)
		repo.On("Update", "p1", (*string)(nil), "new text").Return(nil)

		post, err := uc.UpdatePost("p1", "author", strPtr(""), strPtr("new text"))
		require.NoError(t, err)
		assert.Nil(t, post.Title)
		assert.Equal(t, "new text", post.Text)
		repo.AssertExpectations(t)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		uc, repo, _, _ := newTestUseCase(t)
		repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author"}, nil)

		_, err := uc.UpdatePost("p1", "someone", nil, strPtr("x"))
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeletePost_RemovesMedia(t *testing.T) {
	uc, repo, storage, _ := newTestUseCase(t)

	repo.On("GetByID", "p1").Return(&entity.Post{
		ID:     "p1",
		UserID: "author",
		Media: []entity.PostMedia{
			{URL: "http://minio:9000/media/posts/author/p1/a.jpg"},
			{URL: "https://elsewhere.example/b.jpg"},
		},
	}, nil)
	repo.On("Delete", "p1").Return(nil)
	storage.On("DeleteFile", "posts/author/p1/a.jpg").Return(errors.New("transient"))

	require.NoError(t, uc.DeletePost("p1", "author"))

	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDeletePost_Forbidden(t *testing.T) {
	uc, repo, storage, _ := newTestUseCase(t)
	repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author"}, nil)

	err := uc.DeletePost("p1", "intruder")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", "p1")
	storage.AssertNotCalled(t, "DeleteFile", mock.Anything)
}

func existingMedia(ids ...string) []entity.PostMedia {
	media := make([]entity.PostMedia, len(ids))
	for i, id := range ids {
		media[i] = entity.PostMedia{
			ID:        id,
			PostID:    "p1",
			URL:       "http://minio:9000/media/posts/author/p1/" + id + ".jpg",
			MediaType: entity.MediaTypeImage,
			Position:  i,
		}
	}
	return media
}

func TestUpdatePostMedia_AddRemoveReorder(t *testing.T) {
	uc, repo, storage, s := newTestUseCase(t)

	repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author", Media: existingMedia("m1", "m2", "m3")}, nil)
	storage.On("UploadFile", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "posts/author/p1/")
	}), mock.Anything, "video/mp4").Return("http://minio:9000/media/posts/author/p1/new.mp4", nil)

	stored := existingMedia("m3", "m1", "m4")
	stored[2].MediaType = entity.MediaTypeVideo
	repo.On("ReplaceMedia", "p1", []string{"m2"}, mock.MatchedBy(func(media []entity.PostMedia) bool {
		return len(media) == 3 && media[0].ID == "m3" && media[1].ID == "m1" &&
			media[2].ID == "" && media[2].URL == "http://minio:9000/media/posts/author/p1/new.mp4"
	})).Return(stored, nil)
	storage.On("DeleteFile", "posts/author/p1/m2.jpg").Return(nil)

	post, err := uc.UpdatePostMedia("p1", "author", UpdateMediaInput{
		Add:    fileHeaders(t, upload{"set.mp4", "video/mp4"}),
		Remove: []string{"m2"},
		Order:  []string{"m3", "m1"},
	})
	require.NoError(t, err)

	require.Len(t, post.Media, 3)
	assert.Equal(t, "m3", post.Media[0].ID)
	assert.Equal(t, "m1", post.Media[1].ID)
	assert.Equal(t, "m4", post.Media[2].ID)
	assert.Equal(t, entity.MediaTypeVideo, post.Media[2].MediaType)
	assert.Equal(t, 2, post.Media[2].Position)

	repo.AssertExpectations(t)
	storage.AssertExpectations(t)

	v, err := s.Get(cache.ExploreVersionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestUpdatePostMedia_CapCountsKeptMedia(t *testing.T) {
	uc, repo, storage, _ := newTestUseCase(t)

	ids := make([]string, MaxMediaPerPost-1)
	for i := range ids {
		ids[i] = fmt.Sprintf("m%d", i)
	}
	repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author", Media: existingMedia(ids...)}, nil)

	_, err := uc.UpdatePostMedia("p1", "author", UpdateMediaInput{
		Add: fileHeaders(t, upload{"a.png", "image/png"}, upload{"b.png", "image/png"}),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "ReplaceMedia", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePostMedia_RemovingMakesRoom(t *testing.T) {
	uc, repo, storage, _ := newTestUseCase(t)

	ids := make([]string, MaxMediaPerPost)
	for i := range ids {
		ids[i] = fmt.Sprintf("m%d", i)
	}
	repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author", Media: existingMedia(ids...)}, nil)
	storage.On("UploadFile", mock.Anything, mock.Anything, "image/png").Return("http://minio:9000/media/posts/author/p1/n.png", nil)
	repo.On("ReplaceMedia", "p1", []string{"m0"}, mock.MatchedBy(func(media []entity.PostMedia) bool {
		return len(media) == MaxMediaPerPost && media[0].ID == "m1" && media[MaxMediaPerPost-1].ID == ""
	})).Return(existingMedia(ids...), nil)
	storage.On("DeleteFile", "posts/author/p1/m0.jpg").Return(nil)

	_, err := uc.UpdatePostMedia("p1", "author", UpdateMediaInput{
		Add:    fileHeaders(t, upload{"n.png", "image/png"}),
		Remove: []string{"m0"},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestUpdatePostMedia_RepositoryFailureRemovesUploads(t *testing.T) {
	uc, repo, storage, s := newTestUseCase(t)

	repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author", Media: existingMedia("m1")}, nil)
	storage.On("UploadFile", mock.Anything, mock.Anything, "image/png").Return("http://minio:9000/media/posts/author/p1/new.png", nil)
	repo.On("ReplaceMedia", "p1", []string{"m1"}, mock.Anything).Return(nil, errors.New("tx aborted"))
	storage.On("DeleteFile", "posts/author/p1/new.png").Return(nil)

	_, err := uc.UpdatePostMedia("p1", "author", UpdateMediaInput{
		Add:    fileHeaders(t, upload{"new.png", "image/png"}),
		Remove: []string{"m1"},
	})
	require.Error(t, err)

	storage.AssertExpectations(t)
	// the removed object survives because the row was never deleted
	storage.AssertNotCalled(t, "DeleteFile", "posts/author/p1/m1.jpg")
	assert.False(t, s.Exists(cache.ExploreVersionKey))
}

func TestUpdatePostMedia_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		input UpdateMediaInput
	}{
		{"nothing to change", UpdateMediaInput{}},
		{"foreign media id", UpdateMediaInput{Remove: []string{"elsewhere"}}},
		{"order misses a kept id", UpdateMediaInput{Order: []string{"m1"}}},
		{"order repeats an id", UpdateMediaInput{Order: []string{"m1", "m1"}}},
		{"order lists a removed id", UpdateMediaInput{Remove: []string{"m2"}, Order: []string{"m2"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo, storage, _ := newTestUseCase(t)
			repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author", Media: existingMedia("m1", "m2")}, nil)

			_, err := uc.UpdatePostMedia("p1", "author", tc.input)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			repo.AssertNotCalled(t, "ReplaceMedia", mock.Anything, mock.Anything, mock.Anything)
			storage.AssertNotCalled(t, "DeleteFile", mock.Anything)
		})
	}
}

func TestUpdatePostMedia_Forbidden(t *testing.T) {
	uc, repo, _, _ := newTestUseCase(t)
	repo.On("GetByID", "p1").Return(&entity.Post{ID: "p1", UserID: "author", Media: existingMedia("m1")}, nil)

	_, err := uc.UpdatePostMedia("p1", "intruder", UpdateMediaInput{Remove: []string{"m1"}})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
