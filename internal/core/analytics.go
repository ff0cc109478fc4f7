package core

import (
	"encoding/json"
	"sort"
	"strings"
)

// topCommenterLimit caps the frequency leaderboard in the analytics rollup.
const topCommenterLimit = 5

// commentEnvelope matches the upstream payload variant that wraps the comment
// list under a "data" key.
type commentEnvelope struct {
	Data []Comment `json:"data"`
}

// ExtractComments pulls the comment list out of a decoded upstream payload.
// Current upstream responses wrap the list in a "data" envelope; older ones
// returned a bare array. Anything else yields an empty list rather than an
// error so the rollup stays total.
func ExtractComments(payload json.RawMessage) []Comment {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var comments []Comment
		if err := json.Unmarshal(payload, &comments); err == nil {
			return comments
		}
		return nil
	}

	var envelope commentEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil {
		return envelope.Data
	}
	return nil
}

// AggregateComments reduces a comment list to the analytics summary: total
// count, distinct commenter names, mean reaction count, and the most frequent
// commenters. Frequency ties keep first-seen order.
func AggregateComments(comments []Comment) CommentAnalytics {
	analytics := CommentAnalytics{
		TotalComments: len(comments),
		TopCommenters: []TopCommenter{},
	}
	if len(comments) == 0 {
		return analytics
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(comments))
	var reactions float64

	for _, comment := range comments {
		reactions += comment.Stats.TotalReactions

		name := strings.TrimSpace(comment.Author.Name)
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	analytics.UniqueCommenters = len(counts)
	analytics.AverageReactions = reactions / float64(len(comments))

	// Stable sort over the first-seen list keeps frequency ties in first-seen order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topCommenterLimit {
		order = order[:topCommenterLimit]
	}
	for _, name := range order {
		analytics.TopCommenters = append(analytics.TopCommenters, TopCommenter{
			Name:  name,
			Count: counts[name],
		})
	}

	return analytics
}
