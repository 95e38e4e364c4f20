package persistent

import (
	"fitsocial/services/routine/internal/entity"
	"fitsocial/services/routine/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository interface {
	List(muscleGroup string) ([]*entity.Exercise, error)
	// CountExisting returns how many of ids are in the catalog.
	CountExisting(ids []string) (int64, error)
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) List(muscleGroup string) ([]*entity.Exercise, error) {
	query := r.db.Order("name ASC")
	if muscleGroup != "" {
		query = query.Where("LOWER(muscle_group) = LOWER(?)", muscleGroup)
	}

	var exerciseModels []model.ExerciseModel
	if err := query.Find(&exerciseModels).Error; err != nil {
		return nil, err
	}

	exercises := make([]*entity.Exercise, len(exerciseModels))
	for i := range exerciseModels {
		exercises[i] = ToExerciseEntity(&exerciseModels[i])
	}
	return exercises, nil
}

func (r *exerciseRepository) CountExisting(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&model.ExerciseModel{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
