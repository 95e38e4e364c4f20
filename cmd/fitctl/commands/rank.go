package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"fitsocial/cmd/fitctl/output"
	"fitsocial/pkg/ranking"

	"github.com/spf13/cobra"
)

var (
	rankFile string
	rankNow  string
)

// The row shapes read the fields the services return, so a captured API
// response (bare array or the {"comments": [...]} style wrapper) ranks the
// same way here as it does in the service.
type commentRow struct {
	ID           string            `json:"id"`
	LikesCount   int               `json:"likes_count"`
	RepliesCount *int              `json:"replies_count"`
	Replies      []json.RawMessage `json:"replies"`
	Pinned       bool              `json:"pinned"`
	CreatedAt    time.Time         `json:"created_at"`
}

// replies prefers an explicit count over the embedded reply list.
func (c commentRow) replies() int {
	if c.RepliesCount != nil {
		return *c.RepliesCount
	}
	return len(c.Replies)
}

type postRow struct {
	ID            string    `json:"id"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type routineRow struct {
	ID         string    `json:"id"`
	SaveCount  int       `json:"save_count"`
	UsageCount int       `json:"usage_count"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type rankedRow struct {
	ID     string
	Score  float64
	Pinned bool
}

var rankCmd = &cobra.Command{
	Use:   "rank [comments|posts|routines]",
	Short: "Print items from a JSON file in ranked order with their scores",
	Long: `Reads a JSON array of comments, posts or routines, or a service response
wrapping one, and prints the items in the order the services would display them.

Examples:
  fitctl rank comments --file comments.json
  fitctl rank posts --file explore.json --now 2024-06-01T12:00:00Z`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"comments", "posts", "routines"},
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if rankNow != "" {
			parsed, err := time.Parse(time.RFC3339, rankNow)
			if err != nil {
				return fmt.Errorf("invalid --now: %w", err)
			}
			now = parsed
		}

		f, err := os.Open(rankFile)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", rankFile, err)
		}
		defer f.Close()

		rows, err := rank(args[0], f, now)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			output.Warning(cmd.OutOrStdout(), "No items in %s", rankFile)
			return nil
		}
		return printRanked(cmd.OutOrStdout(), rows)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().StringVar(&rankFile, "file", "", "JSON file holding an array of items or a service response")
	rankCmd.Flags().StringVar(&rankNow, "now", "", "Reference time (RFC3339), defaults to the current time")
	_ = rankCmd.MarkFlagRequired("file")
}

// decodeItems accepts a bare JSON array or an object holding the array under key.
func decodeItems[T any](body []byte, key string) ([]T, error) {
	var items []T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		list, ok := wrapper[key]
		if !ok {
			return nil, fmt.Errorf("failed to decode %s: object has no %q field", key, key)
		}
		trimmed = list
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}

func rank(kind string, r io.Reader, now time.Time) ([]rankedRow, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	switch kind {
	case "comments":
		items, err := decodeItems[commentRow](body, "comments")
		if err != nil {
			return nil, err
		}
		signals := func(c commentRow) ranking.CommentSignals {
			return ranking.CommentSignals{Likes: c.LikesCount, Replies: c.replies(), CreatedAt: c.CreatedAt, Pinned: c.Pinned}
		}
		ranked := ranking.RankComments(items, now, signals)
		rows := make([]rankedRow, len(ranked))
		for i, c := range ranked {
			rows[i] = rankedRow{ID: c.ID, Score: ranking.CommentScore(signals(c), now), Pinned: c.Pinned}
		}
		return rows, nil

	case "posts":
		items, err := decodeItems[postRow](body, "posts")
		if err != nil {
			return nil, err
		}
		signals := func(p postRow) ranking.PostSignals {
			return ranking.PostSignals{Likes: p.LikesCount, Comments: p.CommentsCount, CreatedAt: p.CreatedAt}
		}
		ranked := ranking.RankPosts(items, now, signals)
		rows := make([]rankedRow, len(ranked))
		for i, p := range ranked {
			rows[i] = rankedRow{ID: p.ID, Score: ranking.PostHotness(signals(p), now)}
		}
		return rows, nil

	case "routines":
		items, err := decodeItems[routineRow](body, "routines")
		if err != nil {
			return nil, err
		}
		signals := func(r routineRow) ranking.RoutineSignals {
			return ranking.RoutineSignals{Saves: r.SaveCount, Usage: r.UsageCount, Likes: r.LikesCount, CreatedAt: r.CreatedAt}
		}
		ranked := ranking.RankRoutines(items, now, signals)
		rows := make([]rankedRow, len(ranked))
		for i, r := range ranked {
			rows[i] = rankedRow{ID: r.ID, Score: ranking.RoutineTrending(signals(r), now)}
		}
		return rows, nil
	}

	return nil, fmt.Errorf("unknown kind %q: want comments, posts or routines", kind)
}

func printRanked(w io.Writer, rows []rankedRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tSCORE\tPINNED")
	for i, row := range rows {
		pinned := ""
		if row.Pinned {
			pinned = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%s\n", i+1, row.ID, row.Score, pinned)
	}
	return tw.Flush()
}
