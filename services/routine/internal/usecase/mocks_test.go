package usecase

import (
	"fitsocial/pkg/queue"
	"fitsocial/services/routine/internal/entity"
	"fitsocial/services/routine/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockRoutineRepository struct {
	mock.Mock
}

var _ persistent.RoutineRepository = (*MockRoutineRepository)(nil)

func (m *MockRoutineRepository) Create(routine *entity.Routine) error {
	args := m.Called(routine)
	if args.Error(0) == nil && routine.ID == "" {
		routine.ID = "new-routine"
	}
	return args.Error(0)
}

func (m *MockRoutineRepository) GetByID(id string) (*entity.Routine, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Routine), args.Error(1)
}

func (m *MockRoutineRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Routine, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*entity.Routine), args.Error(1)
}

func (m *MockRoutineRepository) GetRecent(limit int) ([]*entity.Routine, error) {
	args := m.Called(limit)
	return args.Get(0).([]*entity.Routine), args.Error(1)
}

func (m *MockRoutineRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockRoutineRepository) IncrementUsage(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockRoutineRepository) Save(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineRepository) Unsave(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineRepository) IsSaved(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineRepository) GetSaved(userID string, limit, offset int) ([]*entity.Routine, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*entity.Routine), args.Error(1)
}

func (m *MockRoutineRepository) Like(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineRepository) Unlike(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineRepository) IsLiked(userID, routineID string) (bool, error) {
	args := m.Called(userID, routineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoutineRepository) ViewerState(userID string, ids []string) (map[string]bool, map[string]bool, error) {
	args := m.Called(userID, ids)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(map[string]bool), args.Get(1).(map[string]bool), args.Error(2)
}

type MockExerciseRepository struct {
	mock.Mock
}

var _ persistent.ExerciseRepository = (*MockExerciseRepository)(nil)

func (m *MockExerciseRepository) List(muscleGroup string) ([]*entity.Exercise, error) {
	args := m.Called(muscleGroup)
	return args.Get(0).([]*entity.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) CountExisting(ids []string) (int64, error) {
	args := m.Called(ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

var _ queue.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishNotificationTask(task queue.Task) error {
	return m.Called(task).Error(0)
}
