package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Exercise struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	MuscleGroup string    `gorm:"index" json:"muscle_group"`
	Equipment   string    `json:"equipment"`
	CreatedAt   time.Time `json:"created_at"`
}

type Routine struct {
	ID                string            `gorm:"type:uuid;primary_key" json:"id"`
	Name              string            `gorm:"not null" json:"name"`
	Description       string            `gorm:"type:text" json:"description"`
	UserID            string            `gorm:"type:uuid;not null;index" json:"user_id"`
	OriginalCreatorID *string           `gorm:"type:uuid" json:"original_creator_id,omitempty"`
	UsageCount        int               `gorm:"default:0" json:"usage_count"`
	SaveCount         int               `gorm:"default:0" json:"save_count"`
	LikesCount        int               `gorm:"default:0" json:"likes_count"`
	IsOfficial        bool              `gorm:"default:false" json:"is_official"`
	Exercises         []RoutineExercise `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"exercises"`
	CreatedAt         time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type RoutineExercise struct {
	ID          string `gorm:"type:uuid;primary_key" json:"id"`
	RoutineID   string `gorm:"type:uuid;not null;index" json:"routine_id"`
	ExerciseID  string `gorm:"type:uuid;not null" json:"exercise_id"`
	Position    int    `gorm:"not null" json:"position"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
}

type SavedRoutine struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_routines_user_routine" json:"user_id"`
	RoutineID string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_routines_user_routine" json:"routine_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

func (r *Routine) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

func (re *RoutineExercise) BeforeCreate(tx *gorm.DB) error {
	if re.ID == "" {
		re.ID = uuid.New().String()
	}
	return nil
}

func (s *SavedRoutine) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
