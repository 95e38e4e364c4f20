package commands

import (
	"context"
	"fmt"
	"time"

	"fitsocial/cmd/fitctl/output"
	"fitsocial/pkg/cache"
	"fitsocial/pkg/config"
	"fitsocial/pkg/database"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/models"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "password123"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, exercises, routines, posts and follows",
	Long: `Populates an empty database with demo data. Running it again skips users
that already exist, so it is safe to repeat.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log := logger.New()
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := seedDatabase(db, log, time.Now().UTC()); err != nil {
			return err
		}

		if redisClient, err := cache.NewRedisClient(cfg); err == nil {
			if err := cache.BumpExploreVersion(context.Background(), redisClient); err != nil {
				log.Warn("Failed to bump explore version: %v", err)
			}
			redisClient.Close()
		} else {
			output.Warning(cmd.OutOrStdout(), "Redis unavailable, cached explore pages may be stale for up to FEED_CACHE_TTL")
		}

		output.Success(cmd.OutOrStdout(), "Database seeded (password for every demo user: %s)", seedPassword)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedUser struct {
	email    string
	username string
	display  string
	role     models.UserRole
}

var seedUsers = []seedUser{
	{"maya@fitsocial.dev", "coach_maya", "Coach Maya", models.RoleCoach},
	{"alex@fitsocial.dev", "alex_lifts", "Alex", models.RoleMember},
	{"sam@fitsocial.dev", "sam_runs", "Sam", models.RoleMember},
	{"jordan@fitsocial.dev", "jordan_yoga", "Jordan", models.RoleMember},
	{"riley@fitsocial.dev", "riley_fit", "Riley", models.RoleMember},
}

var seedExercises = []models.Exercise{
	{Name: "Back Squat", MuscleGroup: "legs", Equipment: "barbell"},
	{Name: "Romanian Deadlift", MuscleGroup: "legs", Equipment: "barbell"},
	{Name: "Walking Lunge", MuscleGroup: "legs", Equipment: "dumbbell"},
	{Name: "Bench Press", MuscleGroup: "chest", Equipment: "barbell"},
	{Name: "Incline Dumbbell Press", MuscleGroup: "chest", Equipment: "dumbbell"},
	{Name: "Push-up", MuscleGroup: "chest", Equipment: "bodyweight"},
	{Name: "Pull-up", MuscleGroup: "back", Equipment: "bodyweight"},
	{Name: "Barbell Row", MuscleGroup: "back", Equipment: "barbell"},
	{Name: "Overhead Press", MuscleGroup: "shoulders", Equipment: "barbell"},
	{Name: "Lateral Raise", MuscleGroup: "shoulders", Equipment: "dumbbell"},
	{Name: "Plank", MuscleGroup: "core", Equipment: "bodyweight"},
	{Name: "Hanging Leg Raise", MuscleGroup: "core", Equipment: "bodyweight"},
}

type seedStep struct {
	exercise string
	sets     int
	reps     int
	rest     int
}

type seedRoutine struct {
	name        string
	description string
	official    bool
	steps       []seedStep
}

var coachRoutines = []seedRoutine{
	{
		name:        "Full Body Foundations",
		description: "Three compound lifts and a core finisher. Twice a week.",
		official:    true,
		steps: []seedStep{
			{"Back Squat", 3, 8, 150},
			{"Bench Press", 3, 8, 120},
			{"Barbell Row", 3, 10, 90},
			{"Plank", 3, 45, 60},
		},
	},
	{
		name:        "Push Day",
		description: "Chest and shoulders.",
		steps: []seedStep{
			{"Bench Press", 5, 5, 180},
			{"Incline Dumbbell Press", 3, 10, 90},
			{"Overhead Press", 3, 8, 120},
			{"Lateral Raise", 3, 15, 60},
		},
	},
	{
		name:        "Leg Day",
		description: "Squat heavy, then accessories.",
		steps: []seedStep{
			{"Back Squat", 5, 5, 180},
			{"Romanian Deadlift", 3, 8, 120},
			{"Walking Lunge", 3, 12, 90},
			{"Hanging Leg Raise", 3, 12, 60},
		},
	},
}

var seedPosts = []string{
	"First week on the new program. Legs are sore in the best way.",
	"New squat PR today!",
	"Rest day stretching routine, 20 minutes.",
	"Anyone else doing the Full Body Foundations plan?",
}

// seedDatabase inserts the demo data. Users that already exist are reused and
// their content is not duplicated.
func seedDatabase(db *gorm.DB, log *logger.Logger, now time.Time) error {
	exercises := make(map[string]string, len(seedExercises))
	for _, e := range seedExercises {
		e := e
		if err := db.Where("name = ?", e.Name).FirstOrCreate(&e).Error; err != nil {
			return fmt.Errorf("failed to seed exercise %s: %w", e.Name, err)
		}
		exercises[e.Name] = e.ID
	}
	log.Info("Seeded %d exercises", len(exercises))

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userIDs := make([]string, 0, len(seedUsers))
	var postIDs []string
	for i, su := range seedUsers {
		var existing models.User
		if err := db.Where("email = ? OR username = ?", su.email, su.username).First(&existing).Error; err == nil {
			log.Info("User %s already exists, skipping", su.username)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		user := &models.User{
			Email:       su.email,
			Username:    su.username,
			Password:    string(hashed),
			DisplayName: su.display,
			Role:        su.role,
			IsActive:    true,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", su.username, err)
		}
		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)

		if su.role == models.RoleCoach {
			if err := createRoutines(db, user.ID, exercises, now); err != nil {
				return err
			}
		}

		for j := 0; j < 2; j++ {
			post := &models.Post{
				UserID:    user.ID,
				Text:      seedPosts[(i+j)%len(seedPosts)],
				CreatedAt: now.Add(-time.Duration(i*7+j*3) * time.Hour),
			}
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("failed to create post for %s: %w", su.username, err)
			}
			postIDs = append(postIDs, post.ID)
		}
	}

	for i, follower := range userIDs {
		for j, following := range userIDs {
			// Everyone follows the coach, and each member follows the next one.
			if i == j || (j != 0 && j != (i+1)%len(userIDs)) {
				continue
			}
			if _, err := database.InsertAndBump(db, &models.Follow{FollowerID: follower, FollowingID: following}, "", "", ""); err != nil {
				return fmt.Errorf("failed to seed follow: %w", err)
			}
		}
	}

	for i, postID := range postIDs {
		for j, userID := range userIDs {
			if (i+j)%3 != 0 {
				continue
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				_, err := database.InsertAndBump(tx, &models.PostLike{PostID: postID, UserID: userID}, "posts", postID, "likes_count")
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}
		}
	}

	log.Info("Seeded %d users, %d posts", len(userIDs), len(postIDs))
	return nil
}

func createRoutines(db *gorm.DB, coachID string, exercises map[string]string, now time.Time) error {
	for i, sr := range coachRoutines {
		routine := &models.Routine{
			Name:        sr.name,
			Description: sr.description,
			UserID:      coachID,
			IsOfficial:  sr.official,
			CreatedAt:   now.Add(-time.Duration(i*24) * time.Hour),
		}
		for pos, step := range sr.steps {
			routine.Exercises = append(routine.Exercises, models.RoutineExercise{
				ExerciseID:  exercises[step.exercise],
				Position:    pos,
				Sets:        step.sets,
				Reps:        step.reps,
				RestSeconds: step.rest,
			})
		}
		if err := db.Create(routine).Error; err != nil {
			return fmt.Errorf("failed to create routine %s: %w", sr.name, err)
		}
	}
	return nil
}
