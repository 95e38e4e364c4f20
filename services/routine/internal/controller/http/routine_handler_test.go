package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/logger"
	"fitsocial/services/routine/internal/entity"
	"fitsocial/services/routine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRoutineUseCase struct {
	mock.Mock
}

var _ usecase.RoutineUseCase = (*MockRoutineUseCase)(nil)

func (m *MockRoutineUseCase) routine(args mock.Arguments) (*entity.Routine, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Routine), args.Error(1)
}

func (m *MockRoutineUseCase) routines(args mock.Arguments) ([]*entity.Routine, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Routine), args.Error(1)
}

func (m *MockRoutineUseCase) ListExercises(muscleGroup string) ([]*entity.Exercise, error) {
	args := m.Called(muscleGroup)
	return args.Get(0).([]*entity.Exercise), args.Error(1)
}

func (m *MockRoutineUseCase) CreateRoutine(userID string, input usecase.CreateRoutineInput) (*entity.Routine, error) {
	return m.routine(m.Called(userID, input))
}

func (m *MockRoutineUseCase) GetRoutine(routineID, viewerID string) (*entity.Routine, error) {
	return m.routine(m.Called(routineID, viewerID))
}

func (m *MockRoutineUseCase) GetUserRoutines(userID, viewerID string, limit, offset int) ([]*entity.Routine, error) {
	return m.routines(m.Called(userID, viewerID, limit, offset))
}

func (m *MockRoutineUseCase) DeleteRoutine(routineID, userID string) error {
	return m.Called(routineID, userID).Error(0)
}

func (m *MockRoutineUseCase) CopyRoutine(routineID, userID string) (*entity.Routine, error) {
	return m.routine(m.Called(routineID, userID))
}

func (m *MockRoutineUseCase) ToggleSave(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineUseCase) GetSavedRoutines(userID string, limit, offset int) ([]*entity.Routine, error) {
	return m.routines(m.Called(userID, limit, offset))
}

func (m *MockRoutineUseCase) ToggleLike(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineUseCase) UseRoutine(userID, routineID string) error {
	return m.Called(userID, routineID).Error(0)
}

func (m *MockRoutineUseCase) GetTrending(viewerID string) ([]*entity.Routine, error) {
	return m.routines(m.Called(viewerID))
}

func newTestRouter(uc *MockRoutineUseCase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRoutineHandler(uc, logger.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	r.GET("/exercises", h.ListExercises)
	r.GET("/routines/trending", h.GetTrending)
	r.GET("/routines/saved", h.GetSavedRoutines)
	r.GET("/routines/user/:user_id", h.GetUserRoutines)
	r.GET("/routines/:id", h.GetRoutine)
	r.POST("/routines", h.CreateRoutine)
	r.DELETE("/routines/:id", h.DeleteRoutine)
	r.POST("/routines/:id/copy", h.CopyRoutine)
	r.POST("/routines/:id/save", h.SaveRoutine)
	r.POST("/routines/:id/like", h.LikeRoutine)
	r.POST("/routines/:id/use", h.UseRoutine)
	return r
}

func perform(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRoutine(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "coach")

	uc.On("CreateRoutine", "coach", mock.MatchedBy(func(in usecase.CreateRoutineInput) bool {
		return in.Name == "Pull Day" && len(in.Exercises) == 1 && in.Exercises[0].Sets == 4
	})).Return(&entity.Routine{ID: "r1", Name: "Pull Day"}, nil)

	w := perform(r, "POST", "/routines", []byte(`{"name":"Pull Day","exercises":[{"exercise_id":"row","sets":4,"reps":8,"rest_seconds":120}]}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestCreateRoutine_MissingExerciseID(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "coach")

	w := perform(r, "POST", "/routines", []byte(`{"name":"Pull Day","exercises":[{"sets":4}]}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "CreateRoutine", mock.Anything, mock.Anything)
}

func TestGetRoutine_PassesViewer(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "viewer")

	uc.On("GetRoutine", "r1", "viewer").Return(&entity.Routine{ID: "r1", IsSaved: true}, nil)

	w := perform(r, "GET", "/routines/r1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_saved":true`)
}

func TestSavedRoutesDoNotHitIDRoute(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "bob")

	uc.On("GetSavedRoutines", "bob", 20, 0).Return([]*entity.Routine{{ID: "r1"}}, nil)
	uc.On("GetTrending", "bob").Return([]*entity.Routine{{ID: "r2"}, {ID: "r3"}}, nil)

	w := perform(r, "GET", "/routines/saved", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, "GET", "/routines/trending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])

	uc.AssertNotCalled(t, "GetRoutine", mock.Anything, mock.Anything)
}

func TestDeleteRoutine_Forbidden(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "bob")

	uc.On("DeleteRoutine", "r1", "bob").Return(fmt.Errorf("%w: you can only delete your own routines", apperror.ErrForbidden))

	w := perform(r, "DELETE", "/routines/r1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCopyRoutine(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "bob")

	origin := "alice"
	uc.On("CopyRoutine", "r1", "bob").Return(&entity.Routine{ID: "r9", UserID: "bob", OriginalCreatorID: &origin}, nil)

	w := perform(r, "POST", "/routines/r1/copy", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"original_creator_id":"alice"`)
}

func TestToggles(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "bob")

	uc.On("ToggleSave", "bob", "r1").Return(true, nil)
	uc.On("ToggleLike", "bob", "r1").Return(false, fmt.Errorf("%w: request already in progress", apperror.ErrConflict))

	w := perform(r, "POST", "/routines/r1/save", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"saved":true}`, w.Body.String())

	w = perform(r, "POST", "/routines/r1/like", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUseRoutine_NotFound(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "bob")

	uc.On("UseRoutine", "bob", "gone").Return(fmt.Errorf("routine gone: %w", apperror.ErrNotFound))

	w := perform(r, "POST", "/routines/gone/use", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListExercises_Filter(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "")

	uc.On("ListExercises", "back").Return([]*entity.Exercise{{ID: "row", Name: "Barbell Row", MuscleGroup: "back"}}, nil)

	w := perform(r, "GET", "/exercises?muscle_group=back", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Barbell Row")
}

func TestGetUserRoutines_Pagination(t *testing.T) {
	uc := new(MockRoutineUseCase)
	r := newTestRouter(uc, "")

	uc.On("GetUserRoutines", "alice", "", 100, 0).Return([]*entity.Routine{}, nil)
	uc.On("GetUserRoutines", "alice", "", 20, 40).Return([]*entity.Routine{}, nil)

	assert.Equal(t, http.StatusOK, perform(r, "GET", "/routines/user/alice?limit=100", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/routines/user/alice?limit=500&offset=40", nil).Code)
	uc.AssertExpectations(t)
}
