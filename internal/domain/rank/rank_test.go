package rank_test

import (
	"testing"

	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func event(id int64, points float64, penalizes bool, attendance map[string]model.Response) model.Event {
	if attendance == nil {
		attendance = make(map[string]model.Response)
	}
	return model.Event{
		ID:               id,
		PointValue:       points,
		PenalizesAbsence: penalizes,
		Attendance:       attendance,
	}
}

func TestLeaderboard(t *testing.T) {
	Convey("Given events where users land at 80, 40 and 80 percent", t, func() {
		// Five full-point penalizing events. alice and carol make four of
		// five, bob makes two of five.
		events := make([]model.Event, 0, 5)
		for i := int64(1); i <= 5; i++ {
			att := map[string]model.Response{
				"alice": model.Made,
				"bob":   model.Made,
				"carol": model.Made,
			}
			if i == 5 {
				att["alice"] = model.Missed
				att["carol"] = model.Missed
			}
			if i >= 3 {
				att["bob"] = model.Missed
			}
			events = append(events, event(i, 1, true, att))
		}

		entries := rank.Leaderboard(events)

		Convey("Then the tied 80% users precede the 40% user", func() {
			So(entries, ShouldHaveLength, 3)
			So(entries[0].Result.Percentage, ShouldEqual, 80)
			So(entries[1].Result.Percentage, ShouldEqual, 80)
			So(entries[2].UserID, ShouldEqual, "bob")
			So(entries[2].Result.Percentage, ShouldEqual, 40)
		})

		Convey("And the tie keeps first-appearance order", func() {
			So(entries[0].UserID, ShouldEqual, "alice")
			So(entries[1].UserID, ShouldEqual, "carol")
		})

		Convey("And ranks are assigned in order", func() {
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[1].Rank, ShouldEqual, 2)
			So(entries[2].Rank, ShouldEqual, 3)
		})
	})

	Convey("Given a user with no responses anywhere", t, func() {
		events := []model.Event{
			event(1, 1, true, map[string]model.Response{"alice": model.Made}),
			event(2, 1, true, map[string]model.Response{"alice": model.Made}),
		}
		entries := rank.Leaderboard(events)

		Convey("Then only responding users are surfaced", func() {
			So(entries, ShouldHaveLength, 1)
			So(entries[0].UserID, ShouldEqual, "alice")
		})
	})

	Convey("Given equal percentages with different earned points", t, func() {
		// Both at 100%, but alice earned 2 points and bob 1.
		events := []model.Event{
			event(1, 1, true, map[string]model.Response{"alice": model.Made, "bob": model.Made}),
			event(2, 1, false, map[string]model.Response{"alice": model.Made}),
		}
		entries := rank.Leaderboard(events)

		Convey("Then higher earned breaks the tie", func() {
			So(entries[0].UserID, ShouldEqual, "alice")
			So(entries[0].Result.Earned, ShouldEqual, 2)
			So(entries[1].UserID, ShouldEqual, "bob")
		})
	})

	Convey("Given no events", t, func() {
		Convey("Then the leaderboard is empty", func() {
			So(rank.Leaderboard(nil), ShouldBeEmpty)
		})
	})

	Convey("Given repeated rankings of the same input", t, func() {
		att := map[string]model.Response{
			"x": model.Made, "y": model.Made, "z": model.Made,
			"a": model.Made, "b": model.Made, "c": model.Made,
		}
		events := []model.Event{event(1, 1, true, att)}

		Convey("Then the order is deterministic despite map iteration", func() {
			first := rank.Leaderboard(events)
			for i := 0; i < 10; i++ {
				So(rank.Leaderboard(events), ShouldResemble, first)
			}
		})
	})
}
