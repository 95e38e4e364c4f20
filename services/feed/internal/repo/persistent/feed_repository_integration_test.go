//go:build integration

package persistent

import (
	"testing"
	"time"

	"fitsocial/pkg/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, db.Exec(
		"INSERT INTO users (id, email, username, password, avatar_url) VALUES (?, ?, ?, 'x', ?)",
		id, username+"@example.com", username, "https://cdn.example/"+username+".png",
	).Error)
	return id
}

func seedPost(t *testing.T, db *gorm.DB, userID, text string, createdAt time.Time) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, db.Exec(
		"INSERT INTO posts (id, user_id, text, created_at) VALUES (?, ?, ?, ?)",
		id, userID, text, createdAt,
	).Error)
	return id
}

func TestFeedRepository_FollowingFeed(t *testing.T) {
	db := testdb.New(t)
	repo := NewFeedRepository(db)
	now := time.Now().UTC()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	require.NoError(t, db.Exec(
		"INSERT INTO follows (id, follower_id, following_id) VALUES (?, ?, ?)",
		uuid.New().String(), alice, bob,
	).Error)

	own := seedPost(t, db, alice, "own", now.Add(-3*time.Hour))
	followed := seedPost(t, db, bob, "followed", now.Add(-time.Hour))
	seedPost(t, db, carol, "stranger", now)

	require.NoError(t, db.Exec(
		"INSERT INTO post_media (id, post_id, url, media_type, position) VALUES (?, ?, 'b.jpg', 'image', 1), (?, ?, 'a.jpg', 'image', 0)",
		uuid.New().String(), followed, uuid.New().String(), followed,
	).Error)

	posts, err := repo.GetFollowingFeed(alice, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, followed, posts[0].ID)
	assert.Equal(t, own, posts[1].ID)
	assert.Equal(t, "bob", posts[0].Username)
	assert.Equal(t, "https://cdn.example/bob.png", posts[0].AvatarURL)
	require.Len(t, posts[0].Media, 2)
	assert.Equal(t, "a.jpg", posts[0].Media[0].URL)

	posts, err = repo.GetFollowingFeed(alice, 1, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, own, posts[0].ID)
}

func TestFeedRepository_RecentAndLiked(t *testing.T) {
	db := testdb.New(t)
	repo := NewFeedRepository(db)
	now := time.Now().UTC()

	alice := seedUser(t, db, "alice")
	older := seedPost(t, db, alice, "older", now.Add(-time.Hour))
	newer := seedPost(t, db, alice, "newer", now)

	posts, err := repo.GetRecentPosts(1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, newer, posts[0].ID)

	require.NoError(t, db.Exec(
		"INSERT INTO post_likes (id, post_id, user_id) VALUES (?, ?, ?)",
		uuid.New().String(), older, alice,
	).Error)

	liked, err := repo.LikedPostIDs(alice, []string{older, newer})
	require.NoError(t, err)
	assert.True(t, liked[older])
	assert.False(t, liked[newer])

	liked, err = repo.LikedPostIDs("", []string{older})
	require.NoError(t, err)
	assert.Empty(t, liked)
}
