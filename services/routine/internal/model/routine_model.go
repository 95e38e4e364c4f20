package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseModel struct {
	ID          string `gorm:"type:uuid;primary_key"`
	Name        string `gorm:"uniqueIndex;not null"`
	MuscleGroup string `gorm:"index"`
	Equipment   string
	CreatedAt   time.Time
}

func (ExerciseModel) TableName() string {
	return "exercises"
}

type RoutineModel struct {
	ID                string                 `gorm:"type:uuid;primary_key"`
	Name              string                 `gorm:"not null"`
	Description       string                 `gorm:"type:text"`
	UserID            string                 `gorm:"type:uuid;not null;index"`
	OriginalCreatorID *string                `gorm:"type:uuid"`
	UsageCount        int                    `gorm:"default:0"`
	SaveCount         int                    `gorm:"default:0"`
	LikesCount        int                    `gorm:"default:0"`
	IsOfficial        bool                   `gorm:"default:false"`
	Exercises         []RoutineExerciseModel `gorm:"foreignKey:RoutineID"`
	CreatedAt         time.Time              `gorm:"index"`
	UpdatedAt         time.Time
}

func (RoutineModel) TableName() string {
	return "routines"
}

func (r *RoutineModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type RoutineExerciseModel struct {
	ID          string        `gorm:"type:uuid;primary_key"`
	RoutineID   string        `gorm:"type:uuid;not null;index"`
	ExerciseID  string        `gorm:"type:uuid;not null"`
	Exercise    ExerciseModel `gorm:"foreignKey:ExerciseID"`
	Position    int           `gorm:"not null"`
	Sets        int
	Reps        int
	RestSeconds int
}

func (RoutineExerciseModel) TableName() string {
	return "routine_exercises"
}

func (re *RoutineExerciseModel) BeforeCreate(tx *gorm.DB) error {
	if re.ID == "" {
		re.ID = uuid.New().String()
	}
	return nil
}

type SavedRoutineModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	UserID    string `gorm:"type:uuid;not null"`
	RoutineID string `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (SavedRoutineModel) TableName() string {
	return "saved_routines"
}

func (s *SavedRoutineModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type RoutineLikeModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	RoutineID string `gorm:"type:uuid;not null"`
	UserID    string `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (RoutineLikeModel) TableName() string {
	return "routine_likes"
}

func (l *RoutineLikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type AuthorRow struct {
	ID       string
	Username string
}
