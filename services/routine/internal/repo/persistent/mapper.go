package persistent

import (
	"fitsocial/services/routine/internal/entity"
	"fitsocial/services/routine/internal/model"
)

func ToExerciseEntity(m *model.ExerciseModel) *entity.Exercise {
	if m == nil {
		return nil
	}

	return &entity.Exercise{
		ID:          m.ID,
		Name:        m.Name,
		MuscleGroup: m.MuscleGroup,
		Equipment:   m.Equipment,
	}
}

func ToRoutineEntity(m *model.RoutineModel) *entity.Routine {
	if m == nil {
		return nil
	}

	exercises := make([]entity.RoutineExercise, len(m.Exercises))
	for i, re := range m.Exercises {
		exercises[i] = entity.RoutineExercise{
			ExerciseID:  re.ExerciseID,
			Name:        re.Exercise.Name,
			MuscleGroup: re.Exercise.MuscleGroup,
			Position:    re.Position,
			Sets:        re.Sets,
			Reps:        re.Reps,
			RestSeconds: re.RestSeconds,
		}
	}

	return &entity.Routine{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		UserID:            m.UserID,
		OriginalCreatorID: m.OriginalCreatorID,
		UsageCount:        m.UsageCount,
		SaveCount:         m.SaveCount,
		LikesCount:        m.LikesCount,
		IsOfficial:        m.IsOfficial,
		Exercises:         exercises,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ToRoutineModel maps everything but the exercise list, which the repository
// writes separately.
func ToRoutineModel(e *entity.Routine) *model.RoutineModel {
	if e == nil {
		return nil
	}

	return &model.RoutineModel{
		ID:                e.ID,
		Name:              e.Name,
		Description:       e.Description,
		UserID:            e.UserID,
		OriginalCreatorID: e.OriginalCreatorID,
		UsageCount:        e.UsageCount,
		SaveCount:         e.SaveCount,
		LikesCount:        e.LikesCount,
		IsOfficial:        e.IsOfficial,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func ToRoutineExerciseModel(routineID string, e entity.RoutineExercise) *model.RoutineExerciseModel {
	return &model.RoutineExerciseModel{
		RoutineID:   routineID,
		ExerciseID:  e.ExerciseID,
		Position:    e.Position,
		Sets:        e.Sets,
		Reps:        e.Reps,
		RestSeconds: e.RestSeconds,
	}
}
