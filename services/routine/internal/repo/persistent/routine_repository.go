package persistent

import (
	"fitsocial/pkg/database"
	"fitsocial/services/routine/internal/entity"
	"fitsocial/services/routine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoutineRepository interface {
	Create(routine *entity.Routine) error
	GetByID(id string) (*entity.Routine, error)
	GetByUserID(userID string, limit, offset int) ([]*entity.Routine, error)
	GetRecent(limit int) ([]*entity.Routine, error)
	Delete(id string) error
	IncrementUsage(id string) error

	Save(userID, routineID string) (bool, error)
	Unsave(userID, routineID string) (bool, error)
	IsSaved(userID, routineID string) (bool, error)
	GetSaved(userID string, limit, offset int) ([]*entity.Routine, error)

	Like(userID, routineID string) (bool, error)
	Unlike(userID, routineID string) (bool, error)
	IsLiked(userID, routineID string) (bool, error)

	// ViewerState reports which of ids the user has saved and liked.
	ViewerState(userID string, ids []string) (saved, liked map[string]bool, err error)
}

type routineRepository struct {
	db *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) RoutineRepository {
	return &routineRepository{db: db}
}

func (r *routineRepository) Create(routine *entity.Routine) error {
	routineModel := ToRoutineModel(routine)
	if routineModel.ID == "" {
		routineModel.ID = uuid.New().String()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Exercises").Create(routineModel).Error; err != nil {
			return err
		}

		for i, step := range routine.Exercises {
			step.Position = i
			if err := tx.Omit("Exercise").Create(ToRoutineExerciseModel(routineModel.ID, step)).Error; err != nil {
				return err
			}
			routine.Exercises[i].Position = i
		}

		routine.ID = routineModel.ID
		routine.CreatedAt = routineModel.CreatedAt
		routine.UpdatedAt = routineModel.UpdatedAt
		return nil
	})
}

func (r *routineRepository) withExercises() *gorm.DB {
	return r.db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("routine_exercises.position ASC")
		}).
		Preload("Exercises.Exercise")
}

func (r *routineRepository) GetByID(id string) (*entity.Routine, error) {
	var routineModel model.RoutineModel
	if err := r.withExercises().Where("id = ?", id).First(&routineModel).Error; err != nil {
		return nil, err
	}

	routines := []*entity.Routine{ToRoutineEntity(&routineModel)}
	if err := r.attachAuthors(routines); err != nil {
		return nil, err
	}
	return routines[0], nil
}

func (r *routineRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Routine, error) {
	query := r.withExercises().Where("user_id = ?", userID).Order("created_at DESC")
	return r.find(query.Limit(limit).Offset(offset))
}

func (r *routineRepository) GetRecent(limit int) ([]*entity.Routine, error) {
	return r.find(r.withExercises().Order("created_at DESC").Limit(limit))
}

func (r *routineRepository) find(query *gorm.DB) ([]*entity.Routine, error) {
	var routineModels []model.RoutineModel
	if err := query.Find(&routineModels).Error; err != nil {
		return nil, err
	}

	routines := make([]*entity.Routine, len(routineModels))
	for i := range routineModels {
		routines[i] = ToRoutineEntity(&routineModels[i])
	}
	if err := r.attachAuthors(routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// Delete removes the routine; its steps, saves and likes cascade.
func (r *routineRepository) Delete(id string) error {
	return r.db.Delete(&model.RoutineModel{}, "id = ?", id).Error
}

func (r *routineRepository) IncrementUsage(id string) error {
	res := r.db.Model(&model.RoutineModel{}).Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *routineRepository) Save(userID, routineID string) (bool, error) {
	var created bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = database.InsertAndBump(tx, &model.SavedRoutineModel{UserID: userID, RoutineID: routineID}, "routines", routineID, "save_count")
		return err
	})
	return created, err
}

func (r *routineRepository) Unsave(userID, routineID string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		query := tx.Where("user_id = ? AND routine_id = ?", userID, routineID)
		deleted, err = database.DeleteAndDrop(tx, query, &model.SavedRoutineModel{}, "routines", routineID, "save_count")
		return err
	})
	return deleted, err
}

func (r *routineRepository) IsSaved(userID, routineID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SavedRoutineModel{}).Where("user_id = ? AND routine_id = ?", userID, routineID).Count(&count).Error
	return count > 0, err
}

func (r *routineRepository) GetSaved(userID string, limit, offset int) ([]*entity.Routine, error) {
	query := r.withExercises().
		Select("routines.*").
		Joins("JOIN saved_routines ON saved_routines.routine_id = routines.id").
		Where("saved_routines.user_id = ?", userID).
		Order("saved_routines.created_at DESC").
		Limit(limit).
		Offset(offset)
	return r.find(query)
}

func (r *routineRepository) Like(userID, routineID string) (bool, error) {
	var created bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = database.InsertAndBump(tx, &model.RoutineLikeModel{UserID: userID, RoutineID: routineID}, "routines", routineID, "likes_count")
		return err
	})
	return created, err
}

func (r *routineRepository) Unlike(userID, routineID string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		query := tx.Where("user_id = ? AND routine_id = ?", userID, routineID)
		deleted, err = database.DeleteAndDrop(tx, query, &model.RoutineLikeModel{}, "routines", routineID, "likes_count")
		return err
	})
	return deleted, err
}

func (r *routineRepository) IsLiked(userID, routineID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.RoutineLikeModel{}).Where("user_id = ? AND routine_id = ?", userID, routineID).Count(&count).Error
	return count > 0, err
}

func (r *routineRepository) ViewerState(userID string, ids []string) (map[string]bool, map[string]bool, error) {
	saved := make(map[string]bool)
	liked := make(map[string]bool)
	if userID == "" || len(ids) == 0 {
		return saved, liked, nil
	}

	var savedIDs []string
	if err := r.db.Model(&model.SavedRoutineModel{}).
		Where("user_id = ? AND routine_id IN ?", userID, ids).
		Pluck("routine_id", &savedIDs).Error; err != nil {
		return nil, nil, err
	}
	var likedIDs []string
	if err := r.db.Model(&model.RoutineLikeModel{}).
		Where("user_id = ? AND routine_id IN ?", userID, ids).
		Pluck("routine_id", &likedIDs).Error; err != nil {
		return nil, nil, err
	}

	for _, id := range savedIDs {
		saved[id] = true
	}
	for _, id := range likedIDs {
		liked[id] = true
	}
	return saved, liked, nil
}

func (r *routineRepository) attachAuthors(routines []*entity.Routine) error {
	if len(routines) == 0 {
		return nil
	}

	ids := make([]string, 0, len(routines))
	for _, rt := range routines {
		ids = append(ids, rt.UserID)
	}

	var rows []model.AuthorRow
	if err := r.db.Table("users").Select("id, username").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return err
	}

	authors := make(map[string]string, len(rows))
	for _, row := range rows {
		authors[row.ID] = row.Username
	}
	for _, rt := range routines {
		rt.Username = authors[rt.UserID]
	}
	return nil
}
