// Package rank aggregates per-user scores into a leaderboard.
package rank

import (
	"sort"

	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/scoring"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank   int            `json:"rank"`
	UserID string         `json:"user_id"`
	Result scoring.Result `json:"result"`
}

// Leaderboard scores every user who has responded to at least one event in
// the set and returns them ordered by percentage descending. Users with no
// recorded response anywhere are never surfaced.
//
// Ordering is fully deterministic: ties on percentage break by earned
// points descending, and remaining ties keep discovery order (events in
// input order, user ids within an event in ascending order). The caller
// truncates to its presentation cap; the full ranking is returned here.
func Leaderboard(events []model.Event) []Entry {
	users := discoverUsers(events)

	entries := make([]Entry, 0, len(users))
	for _, user := range users {
		entries = append(entries, Entry{
			UserID: user,
			Result: scoring.Score(user, events),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Result.Percentage != entries[j].Result.Percentage {
			return entries[i].Result.Percentage > entries[j].Result.Percentage
		}
		return entries[i].Result.Earned > entries[j].Result.Earned
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// discoverUsers walks events in input order and collects each user the
// first time it appears. Map iteration order is not stable, so ids within
// a single event are sorted before being appended.
func discoverUsers(events []model.Event) []string {
	seen := make(map[string]struct{})
	var users []string
	for i := range events {
		ids := make([]string, 0, len(events[i].Attendance))
		for user := range events[i].Attendance {
			ids = append(ids, user)
		}
		sort.Strings(ids)
		for _, user := range ids {
			if _, ok := seen[user]; ok {
				continue
			}
			seen[user] = struct{}{}
			users = append(users, user)
		}
	}
	return users
}
