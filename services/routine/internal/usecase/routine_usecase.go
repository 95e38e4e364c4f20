package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/cache"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/queue"
	"fitsocial/pkg/ranking"
	"fitsocial/services/routine/internal/entity"
	"fitsocial/services/routine/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 1000
	MaxExercises         = 50
	maxSets              = 100
	maxReps              = 1000
	maxRestSeconds       = 3600
)

type ExerciseInput struct {
	ExerciseID  string
	Sets        int
	Reps        int
	RestSeconds int
}

type CreateRoutineInput struct {
	Name        string
	Description string
	Exercises   []ExerciseInput
}

type RoutineUseCase interface {
	ListExercises(muscleGroup string) ([]*entity.Exercise, error)

	CreateRoutine(userID string, input CreateRoutineInput) (*entity.Routine, error)
	GetRoutine(routineID, viewerID string) (*entity.Routine, error)
	GetUserRoutines(userID, viewerID string, limit, offset int) ([]*entity.Routine, error)
	DeleteRoutine(routineID, userID string) error
	CopyRoutine(routineID, userID string) (*entity.Routine, error)

	ToggleSave(userID, routineID string) (bool, error)
	GetSavedRoutines(userID string, limit, offset int) ([]*entity.Routine, error)
	ToggleLike(userID, routineID string) (bool, error)
	UseRoutine(userID, routineID string) error

	GetTrending(viewerID string) ([]*entity.Routine, error)
}

type routineUseCase struct {
	routineRepo  persistent.RoutineRepository
	exerciseRepo persistent.ExerciseRepository
	redisClient  *redis.Client
	publisher    queue.Publisher
	logger       *logger.Logger
	pageSize     int
	now          func() time.Time
}

func NewRoutineUseCase(
	routineRepo persistent.RoutineRepository,
	exerciseRepo persistent.ExerciseRepository,
	redisClient *redis.Client,
	publisher queue.Publisher,
	logger *logger.Logger,
	trendingPageSize int,
) RoutineUseCase {
	if trendingPageSize <= 0 || trendingPageSize > ranking.MaxPageSize {
		trendingPageSize = ranking.MaxPageSize
	}
	return &routineUseCase{
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
		redisClient:  redisClient,
		publisher:    publisher,
		logger:       logger,
		pageSize:     trendingPageSize,
		now:          time.Now,
	}
}

func (uc *routineUseCase) ListExercises(muscleGroup string) ([]*entity.Exercise, error) {
	exercises, err := uc.exerciseRepo.List(strings.TrimSpace(muscleGroup))
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

func (uc *routineUseCase) CreateRoutine(userID string, input CreateRoutineInput) (*entity.Routine, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperror.ErrInvalidInput)
	}
	if len([]rune(name)) > maxNameLength {
		return nil, fmt.Errorf("%w: name exceeds %d characters", apperror.ErrInvalidInput, maxNameLength)
	}
	description := strings.TrimSpace(input.Description)
	if len([]rune(description)) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", apperror.ErrInvalidInput, maxDescriptionLength)
	}

	steps, err := uc.validateExercises(input.Exercises)
	if err != nil {
		return nil, err
	}

	routine := &entity.Routine{
		Name:        name,
		Description: description,
		UserID:      userID,
		Exercises:   steps,
	}
	if err := uc.routineRepo.Create(routine); err != nil {
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}

	uc.logger.Info("Routine %s created by %s with %d exercises", routine.ID, userID, len(steps))
	return routine, nil
}

func (uc *routineUseCase) validateExercises(inputs []ExerciseInput) ([]entity.RoutineExercise, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: a routine needs at least one exercise", apperror.ErrInvalidInput)
	}
	if len(inputs) > MaxExercises {
		return nil, fmt.Errorf("%w: maximum %d exercises per routine", apperror.ErrInvalidInput, MaxExercises)
	}

	steps := make([]entity.RoutineExercise, len(inputs))
	distinct := make(map[string]struct{}, len(inputs))
	for i, in := range inputs {
		if in.ExerciseID == "" {
			return nil, fmt.Errorf("%w: exercise %d has no exercise_id", apperror.ErrInvalidInput, i+1)
		}
		if in.Sets < 0 || in.Sets > maxSets || in.Reps < 0 || in.Reps > maxReps ||
			in.RestSeconds < 0 || in.RestSeconds > maxRestSeconds {
			return nil, fmt.Errorf("%w: exercise %d has out of range sets, reps or rest", apperror.ErrInvalidInput, i+1)
		}
		distinct[in.ExerciseID] = struct{}{}
		steps[i] = entity.RoutineExercise{
			ExerciseID:  in.ExerciseID,
			Position:    i,
			Sets:        in.Sets,
			Reps:        in.Reps,
			RestSeconds: in.RestSeconds,
		}
	}

	ids := make([]string, 0, len(distinct))
	for id := range distinct {
		ids = append(ids, id)
	}
	found, err := uc.exerciseRepo.CountExisting(ids)
	if errors.Is(apperror.NotFoundOr(err), apperror.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown exercise in routine", apperror.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check exercises: %w", err)
	}
	if found != int64(len(ids)) {
		return nil, fmt.Errorf("%w: unknown exercise in routine", apperror.ErrInvalidInput)
	}

	return steps, nil
}

func (uc *routineUseCase) routine(routineID string) (*entity.Routine, error) {
	routine, err := uc.routineRepo.GetByID(routineID)
	if err != nil {
		return nil, fmt.Errorf("routine %s: %w", routineID, apperror.NotFoundOr(err))
	}
	return routine, nil
}

func (uc *routineUseCase) GetRoutine(routineID, viewerID string) (*entity.Routine, error) {
	routine, err := uc.routine(routineID)
	if err != nil {
		return nil, err
	}
	uc.fillViewerState(viewerID, []*entity.Routine{routine})
	return routine, nil
}

func (uc *routineUseCase) GetUserRoutines(userID, viewerID string, limit, offset int) ([]*entity.Routine, error) {
	routines, err := uc.routineRepo.GetByUserID(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	uc.fillViewerState(viewerID, routines)
	return routines, nil
}

func (uc *routineUseCase) DeleteRoutine(routineID, userID string) error {
	routine, err := uc.routine(routineID)
	if err != nil {
		return err
	}
	if routine.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own routines", apperror.ErrForbidden)
	}

	if err := uc.routineRepo.Delete(routineID); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	return nil
}

// CopyRoutine gives the caller their own editable routine. The copy credits
// the source's original creator, or the source's creator when it is not a copy itself.
func (uc *routineUseCase) CopyRoutine(routineID, userID string) (*entity.Routine, error) {
	source, err := uc.routine(routineID)
	if err != nil {
		return nil, err
	}

	lineage := source.Lineage()
	steps := make([]entity.RoutineExercise, len(source.Exercises))
	copy(steps, source.Exercises)

	routine := &entity.Routine{
		Name:              source.Name,
		Description:       source.Description,
		UserID:            userID,
		OriginalCreatorID: &lineage,
		Exercises:         steps,
	}
	if err := uc.routineRepo.Create(routine); err != nil {
		return nil, fmt.Errorf("failed to copy routine: %w", err)
	}

	queue.Notify(uc.publisher, uc.logger, queue.Task{
		Type:        queue.TaskRoutineCopy,
		RecipientID: source.UserID,
		ActorID:     userID,
		RoutineID:   source.ID,
		Priority:    3,
	})
	return routine, nil
}

func (uc *routineUseCase) ToggleSave(userID, routineID string) (bool, error) {
	source, err := uc.routine(routineID)
	if err != nil {
		return false, err
	}

	var saved bool
	err = cache.WithLock(context.Background(), uc.redisClient, uc.logger, fmt.Sprintf("routine_save:%s:%s", routineID, userID), func() error {
		isSaved, err := uc.routineRepo.IsSaved(userID, routineID)
		if err != nil {
			return fmt.Errorf("failed to check save status: %w", err)
		}

		if isSaved {
			if _, err := uc.routineRepo.Unsave(userID, routineID); err != nil {
				return fmt.Errorf("failed to unsave routine: %w", err)
			}
			saved = false
			return nil
		}

		created, err := uc.routineRepo.Save(userID, routineID)
		if err != nil {
			return fmt.Errorf("failed to save routine: %w", err)
		}
		saved = true
		if created {
			queue.Notify(uc.publisher, uc.logger, queue.Task{
				Type:        queue.TaskRoutineSave,
				RecipientID: source.UserID,
				ActorID:     userID,
				RoutineID:   routineID,
				Priority:    3,
			})
		}
		return nil
	})
	return saved, err
}

func (uc *routineUseCase) GetSavedRoutines(userID string, limit, offset int) ([]*entity.Routine, error) {
	routines, err := uc.routineRepo.GetSaved(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved routines: %w", err)
	}
	uc.fillViewerState(userID, routines)
	return routines, nil
}

func (uc *routineUseCase) ToggleLike(userID, routineID string) (bool, error) {
	if _, err := uc.routine(routineID); err != nil {
		return false, err
	}

	var liked bool
	err := cache.WithLock(context.Background(), uc.redisClient, uc.logger, fmt.Sprintf("routine_like:%s:%s", routineID, userID), func() error {
		isLiked, err := uc.routineRepo.IsLiked(userID, routineID)
		if err != nil {
			return fmt.Errorf("failed to check like status: %w", err)
		}

		if isLiked {
			if _, err := uc.routineRepo.Unlike(userID, routineID); err != nil {
				return fmt.Errorf("failed to unlike routine: %w", err)
			}
			liked = false
			return nil
		}

		if _, err := uc.routineRepo.Like(userID, routineID); err != nil {
			return fmt.Errorf("failed to like routine: %w", err)
		}
		liked = true
		return nil
	})
	return liked, err
}

func (uc *routineUseCase) UseRoutine(userID, routineID string) error {
	if err := uc.routineRepo.IncrementUsage(routineID); err != nil {
		return fmt.Errorf("routine %s: %w", routineID, apperror.NotFoundOr(err))
	}
	uc.logger.Info("Routine %s used by %s", routineID, userID)
	return nil
}

// GetTrending ranks the most recent routines by trending score.
func (uc *routineUseCase) GetTrending(viewerID string) ([]*entity.Routine, error) {
	routines, err := uc.routineRepo.GetRecent(uc.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load routines: %w", err)
	}

	now := uc.now()
	for _, r := range routines {
		r.TrendingScore = ranking.RoutineTrending(entity.RoutineSignals(r), now)
	}
	ranked := ranking.RankRoutines(routines, now, entity.RoutineSignals)

	uc.fillViewerState(viewerID, ranked)
	return ranked, nil
}

func (uc *routineUseCase) fillViewerState(viewerID string, routines []*entity.Routine) {
	if viewerID == "" || len(routines) == 0 {
		return
	}

	ids := make([]string, len(routines))
	for i, r := range routines {
		ids[i] = r.ID
	}
	saved, liked, err := uc.routineRepo.ViewerState(viewerID, ids)
	if err != nil {
		uc.logger.Warn("Failed to load saved/liked state for %s: %v", viewerID, err)
		return
	}
	for _, r := range routines {
		r.IsSaved = saved[r.ID]
		r.IsLiked = liked[r.ID]
	}
}
