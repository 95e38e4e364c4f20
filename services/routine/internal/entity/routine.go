package entity

import (
	"time"

	"fitsocial/pkg/ranking"
)

type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
}

// RoutineExercise is one ordered step of a routine.
type RoutineExercise struct {
	ExerciseID  string `json:"exercise_id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Position    int    `json:"position"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
}

type Routine struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	UserID            string            `json:"user_id"`
	Username          string            `json:"username"`
	OriginalCreatorID *string           `json:"original_creator_id,omitempty"`
	UsageCount        int               `json:"usage_count"`
	SaveCount         int               `json:"save_count"`
	LikesCount        int               `json:"likes_count"`
	IsOfficial        bool              `json:"is_official"`
	IsSaved           bool              `json:"is_saved"`
	IsLiked           bool              `json:"is_liked"`
	TrendingScore     float64           `json:"trending_score,omitempty"`
	Exercises         []RoutineExercise `json:"exercises"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Lineage is the user a copy of r should credit as original creator.
func (r *Routine) Lineage() string {
	if r.OriginalCreatorID != nil && *r.OriginalCreatorID != "" {
		return *r.OriginalCreatorID
	}
	return r.UserID
}

func RoutineSignals(r *Routine) ranking.RoutineSignals {
	return ranking.RoutineSignals{
		Saves:     r.SaveCount,
		Usage:     r.UsageCount,
		Likes:     r.LikesCount,
		CreatedAt: r.CreatedAt,
	}
}
