package models

// All lists every table in dependency order, for AutoMigrate in tests and seeding.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Exercise{},
		&Routine{},
		&RoutineExercise{},
		&SavedRoutine{},
		&RoutineLike{},
		&Post{},
		&PostMedia{},
		&PostLike{},
		&Comment{},
		&CommentLike{},
		&Follow{},
	}
}
