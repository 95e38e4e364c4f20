//go:build integration

package persistent

import (
	"testing"
	"time"

	"fitsocial/pkg/testdb"
	"fitsocial/services/routine/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, db.Exec(
		"INSERT INTO users (id, email, username, password) VALUES (?, ?, ?, 'x')",
		id, username+"@example.com", username,
	).Error)
	return id
}

func seedExercise(t *testing.T, db *gorm.DB, name, group string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, db.Exec(
		"INSERT INTO exercises (id, name, muscle_group, equipment) VALUES (?, ?, ?, 'barbell')",
		id, name, group,
	).Error)
	return id
}

func TestRoutineRepository_CreateLoadsOrderedSteps(t *testing.T) {
	db := testdb.New(t)
	repo := NewRoutineRepository(db)
	alice := seedUser(t, db, "alice")
	squat := seedExercise(t, db, "Back Squat", "legs")
	lunge := seedExercise(t, db, "Lunge", "legs")

	routine := &entity.Routine{
		Name:   "Leg Day",
		UserID: alice,
		Exercises: []entity.RoutineExercise{
			{ExerciseID: lunge, Sets: 3, Reps: 10},
			{ExerciseID: squat, Sets: 5, Reps: 5, RestSeconds: 180},
		},
	}
	require.NoError(t, repo.Create(routine))
	require.NotEmpty(t, routine.ID)

	got, err := repo.GetByID(routine.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	require.Len(t, got.Exercises, 2)
	assert.Equal(t, "Lunge", got.Exercises[0].Name)
	assert.Equal(t, "Back Squat", got.Exercises[1].Name)
	assert.Equal(t, 1, got.Exercises[1].Position)

	exercises, err := NewExerciseRepository(db).List("LEGS")
	require.NoError(t, err)
	assert.Len(t, exercises, 2)

	n, err := NewExerciseRepository(db).CountExisting([]string{squat, uuid.New().String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRoutineRepository_SaveLikeUseCounters(t *testing.T) {
	db := testdb.New(t)
	repo := NewRoutineRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	squat := seedExercise(t, db, "Back Squat", "legs")

	routine := &entity.Routine{Name: "5x5", UserID: alice, Exercises: []entity.RoutineExercise{{ExerciseID: squat}}}
	require.NoError(t, repo.Create(routine))

	created, err := repo.Save(bob, routine.ID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = repo.Save(bob, routine.ID)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.Like(bob, routine.ID)
	require.NoError(t, err)
	require.NoError(t, repo.IncrementUsage(routine.ID))
	require.NoError(t, repo.IncrementUsage(routine.ID))
	assert.ErrorIs(t, repo.IncrementUsage(uuid.New().String()), gorm.ErrRecordNotFound)

	got, err := repo.GetByID(routine.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SaveCount)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 2, got.UsageCount)

	saved, liked, err := repo.ViewerState(bob, []string{routine.ID})
	require.NoError(t, err)
	assert.True(t, saved[routine.ID])
	assert.True(t, liked[routine.ID])

	list, err := repo.GetSaved(bob, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, routine.ID, list[0].ID)

	_, err = repo.Unsave(bob, routine.ID)
	require.NoError(t, err)
	deleted, err := repo.Unsave(bob, routine.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err = repo.GetByID(routine.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SaveCount)
}

func TestRoutineRepository_GetRecentAndDelete(t *testing.T) {
	db := testdb.New(t)
	repo := NewRoutineRepository(db)
	alice := seedUser(t, db, "alice")
	squat := seedExercise(t, db, "Back Squat", "legs")

	var ids []string
	for i := 0; i < 3; i++ {
		r := &entity.Routine{Name: "R", UserID: alice, Exercises: []entity.RoutineExercise{{ExerciseID: squat}}}
		require.NoError(t, repo.Create(r))
		ids = append(ids, r.ID)
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := repo.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)

	require.NoError(t, repo.Delete(ids[0]))
	_, err = repo.GetByID(ids[0])
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
