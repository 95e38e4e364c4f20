// Package ranking holds the scoring formulas used to order comments, posts
// and routines for display. Scores are derived at read time and never stored.
//
// Every function takes the reference time explicitly so results are
// deterministic for a given input.
package ranking

import (
	"math"
	"sort"
	"time"
)

const (
	commentLikeWeight  = 2.0
	commentReplyWeight = 3.0
	commentGravity     = 1.5

	postLikeWeight    = 1.5
	postCommentWeight = 3.0
	postGravity       = 1.4

	routineSaveWeight  = 3.0
	routineUsageWeight = 2.0
	routineLikeWeight  = 1.0

	// Added to the age in hours so brand new items do not divide by ~0.
	ageOffsetHours = 2.0

	// MaxPageSize bounds the number of rows a trending page is ranked over.
	MaxPageSize = 50
)

// CommentSignals are the fields of a top-level comment the ranking looks at.
type CommentSignals struct {
	Likes     int
	Replies   int
	CreatedAt time.Time
	Pinned    bool
}

// PostSignals are the engagement counters of a post.
type PostSignals struct {
	Likes     int
	Comments  int
	CreatedAt time.Time
}

// RoutineSignals are the engagement counters of a routine.
type RoutineSignals struct {
	Saves     int
	Usage     int
	Likes     int
	CreatedAt time.Time
}

// CommentScore computes (likes*2 + replies*3) / (age_hours + 2)^1.5.
func CommentScore(s CommentSignals, now time.Time) float64 {
	engagement := float64(nonNegative(s.Likes))*commentLikeWeight +
		float64(nonNegative(s.Replies))*commentReplyWeight
	return engagement / math.Pow(ageHours(s.CreatedAt, now)+ageOffsetHours, commentGravity)
}

// PostHotness computes (likes*1.5 + comments*3) / (age_hours + 2)^1.4.
func PostHotness(s PostSignals, now time.Time) float64 {
	engagement := float64(nonNegative(s.Likes))*postLikeWeight +
		float64(nonNegative(s.Comments))*postCommentWeight
	return engagement / math.Pow(ageHours(s.CreatedAt, now)+ageOffsetHours, postGravity)
}

// RoutineTrending computes (saves*3 + usage*2 + likes) / ln(age_days + 1)
// with age_days floored at one day.
func RoutineTrending(s RoutineSignals, now time.Time) float64 {
	engagement := float64(nonNegative(s.Saves))*routineSaveWeight +
		float64(nonNegative(s.Usage))*routineUsageWeight +
		float64(nonNegative(s.Likes))*routineLikeWeight

	days := ageHours(s.CreatedAt, now) / 24
	if days < 1 {
		days = 1
	}
	return engagement / math.Log(days+1)
}

// RankComments returns the comments with pinned ones first, in their input
// order, followed by the unpinned ones by descending CommentScore. Ties keep
// input order. The input slice is not modified.
func RankComments[T any](comments []T, now time.Time, signals func(T) CommentSignals) []T {
	pinned := make([]T, 0, len(comments))
	type scored struct {
		item  T
		score float64
	}
	rest := make([]scored, 0, len(comments))

	for _, c := range comments {
		s := signals(c)
		if s.Pinned {
			pinned = append(pinned, c)
			continue
		}
		rest = append(rest, scored{item: c, score: CommentScore(s, now)})
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].score > rest[j].score
	})

	out := pinned
	for _, r := range rest {
		out = append(out, r.item)
	}
	return out
}

// RankPosts orders posts by descending PostHotness. Stable; input untouched.
func RankPosts[T any](posts []T, now time.Time, signals func(T) PostSignals) []T {
	return rankBy(posts, func(p T) float64 { return PostHotness(signals(p), now) })
}

// RankRoutines orders routines by descending RoutineTrending. Stable; input untouched.
func RankRoutines[T any](routines []T, now time.Time, signals func(T) RoutineSignals) []T {
	return rankBy(routines, func(r T) float64 { return RoutineTrending(signals(r), now) })
}

func rankBy[T any](items []T, score func(T) float64) []T {
	scores := make([]float64, len(items))
	idx := make([]int, len(items))
	for i, it := range items {
		scores[i] = score(it)
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	out := make([]T, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// ageHours clamps clock skew (created_at in the future) to zero.
func ageHours(createdAt, now time.Time) float64 {
	h := now.Sub(createdAt).Hours()
	if h < 0 {
		return 0
	}
	return h
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
