package hardcover

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const goalActivitiesQuery = `query ($userId: Int!) {
  activities(where: {user_id: {_eq: $userId}, event: {_eq: "GoalActivity"}}, order_by: {created_at: desc}, limit: 500) {
    id event data created_at
  }
}`

// goalEvent is one goal-activity row, pre-decoding.
type goalEvent struct {
	goal      Goal
	createdAt time.Time
}

// FetchReadingGoals returns the user's reading goals, one per goal id,
// reconstructed from the most recent goal-activity snapshot. Book-metric
// goals are self-healed against the authoritative finished-read count.
func (c *Client) FetchReadingGoals(ctx context.Context) []Goal {
	userID := c.fetchUserID(ctx)
	if userID == 0 {
		return nil
	}

	data, err := c.execute(ctx, goalActivitiesQuery, map[string]any{"userId": userID})
	if err != nil {
		c.log.Warn("fetching goal activities", "error", err)
		return nil
	}

	var events []goalEvent
	gjson.GetBytes(data, "activities").ForEach(func(_, act gjson.Result) bool {
		if act.Get("event").String() != "GoalActivity" {
			return true
		}
		snapshot := act.Get("data.goal")
		if !snapshot.IsObject() {
			return true
		}
		g, err := decodeGoal(snapshot)
		if err != nil {
			// One malformed event must not spoil the batch.
			c.log.Warn("skipping goal snapshot", "activity_id", act.Get("id").Int(), "error", err)
			return true
		}
		events = append(events, goalEvent{goal: g, createdAt: parseTimestamp(act.Get("created_at").String())})
		return true
	})

	goals := latestGoalPerID(events)

	if c.opts.SelfHealGoals {
		for i, g := range goals {
			if !strings.EqualFold(g.Metric, "book") {
				continue
			}
			counted, ok := c.countFinishedReads(ctx, userID, g.StartDate, g.EndDate)
			if !ok {
				// Healing must never fail the call; keep the snapshot.
				continue
			}
			healed := healGoal(g, counted)
			if healed.Progress != g.Progress {
				c.log.Info("self-healed goal progress",
					"goal_id", g.ID, "snapshot", g.Progress, "counted", counted)
			}
			goals[i] = healed
		}
	}
	return goals
}

// latestGoalPerID keeps the snapshot with the latest creation timestamp for
// each goal id, then orders by end date (newest first, id breaking ties).
func latestGoalPerID(events []goalEvent) []Goal {
	latest := make(map[int]goalEvent)
	for _, ev := range events {
		if cur, ok := latest[ev.goal.ID]; !ok || ev.createdAt.After(cur.createdAt) {
			latest[ev.goal.ID] = ev
		}
	}
	goals := make([]Goal, 0, len(latest))
	for _, ev := range latest {
		goals = append(goals, ev.goal)
	}
	sort.Slice(goals, func(i, j int) bool {
		if goals[i].EndDate != goals[j].EndDate {
			return goals[i].EndDate > goals[j].EndDate
		}
		return goals[i].ID > goals[j].ID
	})
	return goals
}

// healGoal returns a copy of g with progress replaced by the authoritative
// count when that count is higher. Healing never lowers progress; all other
// fields are untouched.
func healGoal(g Goal, counted int) Goal {
	if counted <= g.Progress {
		return g
	}
	healed := g
	healed.Progress = counted
	healed.PercentComplete = clamp01(float64(counted) / float64(max(1, g.Goal)))
	return healed
}

const finishedReadsQuery = `query ($userId: Int!, $start: date!, $end: date!) {
  user_book_reads(where: {finished_at: {_is_null: false, _gte: $start, _lte: $end}, user_book: {user_id: {_eq: $userId}}}) {
    id user_book_id finished_at
  }
}`

// countFinishedReads independently recomputes how many books the user
// finished inside a goal window. With CountRereads set, every finished read
// counts as a separate completion; otherwise unique user_books are counted.
func (c *Client) countFinishedReads(ctx context.Context, userID int, startDate, endDate string) (int, bool) {
	data, err := c.execute(ctx, finishedReadsQuery, map[string]any{
		"userId": userID, "start": startDate, "end": endDate,
	})
	if err != nil {
		c.log.Warn("counting finished reads", "error", err)
		return 0, false
	}
	reads := gjson.GetBytes(data, "user_book_reads")
	if !reads.IsArray() {
		return 0, false
	}
	if c.opts.CountRereads {
		return len(reads.Array()), true
	}
	unique := make(map[int64]struct{})
	for _, r := range reads.Array() {
		unique[r.Get("user_book_id").Int()] = struct{}{}
	}
	return len(unique), true
}
