package scoring_test

import (
	"testing"

	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/scoring"
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

func TestScore(t *testing.T) {
	Convey("Given a single full-point penalizing event", t, func() {
		Convey("When the user responded MADE", func() {
			events := []model.Event{
				event(1, 1, true, map[string]model.Response{"u1": model.Made}),
			}
			res := scoring.Score("u1", events)

			Convey("Then the user scores 100%", func() {
				So(res.Earned, ShouldEqual, 1)
				So(res.Possible, ShouldEqual, 1)
				So(res.Percentage, ShouldEqual, 100)
				So(res.Counts.Made, ShouldEqual, 1)
			})
		})

		Convey("When the user never responded", func() {
			events := []model.Event{
				event(1, 1, true, nil),
			}
			res := scoring.Score("u1", events)

			Convey("Then absence counts against the denominator", func() {
				So(res.Earned, ShouldEqual, 0)
				So(res.Possible, ShouldEqual, 1)
				So(res.Percentage, ShouldEqual, 0)
				So(res.Counts.Missed, ShouldEqual, 1)
			})
		})

		Convey("When the user explicitly MISSED", func() {
			events := []model.Event{
				event(1, 1, true, map[string]model.Response{"u1": model.Missed}),
			}
			res := scoring.Score("u1", events)

			Convey("Then it scores identically to absence", func() {
				absent := scoring.Score("u1", []model.Event{event(1, 1, true, nil)})
				So(res, ShouldResemble, absent)
			})
		})
	})

	Convey("Given a non-penalizing event", t, func() {
		Convey("When the user never responded", func() {
			res := scoring.Score("u1", []model.Event{event(1, 1, false, nil)})

			Convey("Then the event is invisible to the percentage", func() {
				So(res.Possible, ShouldEqual, 0)
				So(res.Earned, ShouldEqual, 0)
				So(res.Percentage, ShouldEqual, 0)
			})

			Convey("And the miss still shows in the counts", func() {
				So(res.Counts.Missed, ShouldEqual, 1)
			})
		})

		Convey("When the user explicitly MISSED", func() {
			res := scoring.Score("u1", []model.Event{
				event(1, 1, false, map[string]model.Response{"u1": model.Missed}),
			})

			Convey("Then it contributes to neither possible nor earned", func() {
				So(res.Possible, ShouldEqual, 0)
				So(res.Earned, ShouldEqual, 0)
				So(res.Counts.Missed, ShouldEqual, 1)
			})
		})

		Convey("When a half-point event got a SILENT response", func() {
			res := scoring.Score("u1", []model.Event{
				event(1, 0.5, false, map[string]model.Response{"u1": model.Silent}),
			})

			Convey("Then the cap does not bind below half a point", func() {
				So(res.Earned, ShouldEqual, 0.5)
				So(res.Possible, ShouldEqual, 0.5)
				So(res.Percentage, ShouldEqual, 100)
			})
		})
	})

	Convey("Given a full-point event with a SILENT response", t, func() {
		res := scoring.Score("u1", []model.Event{
			event(1, 1, true, map[string]model.Response{"u1": model.Silent}),
		})

		Convey("Then silent credit is capped at half a point", func() {
			So(res.Earned, ShouldEqual, 0.5)
			So(res.Possible, ShouldEqual, 1)
			So(res.Percentage, ShouldEqual, 50)
			So(res.Counts.Silent, ShouldEqual, 1)
		})
	})

	Convey("Given informational zero-point events", t, func() {
		events := []model.Event{
			event(1, 0, true, map[string]model.Response{"u1": model.Made}),
			event(2, 0, false, map[string]model.Response{"u1": model.Missed}),
		}
		res := scoring.Score("u1", events)

		Convey("Then they contribute nothing at all", func() {
			So(res.Earned, ShouldEqual, 0)
			So(res.Possible, ShouldEqual, 0)
			So(res.Percentage, ShouldEqual, 0)
			So(res.Counts, ShouldResemble, scoring.Counts{})
		})
	})

	Convey("Given one MADE and one MISSED full-point penalizing event", t, func() {
		events := []model.Event{
			event(1, 1, true, map[string]model.Response{"u1": model.Made}),
			event(2, 1, true, map[string]model.Response{"u1": model.Missed}),
		}
		res := scoring.Score("u1", events)

		Convey("Then the user sits at 50%", func() {
			So(res.Earned, ShouldEqual, 1)
			So(res.Possible, ShouldEqual, 2)
			So(res.Percentage, ShouldEqual, 50)
		})
	})

	Convey("Given no qualifying events", t, func() {
		res := scoring.Score("u1", nil)

		Convey("Then zero possible reports 0%, not an error state", func() {
			So(res.Possible, ShouldEqual, 0)
			So(res.Percentage, ShouldEqual, 0)
		})
	})

	Convey("Given a large mixed event set", t, func() {
		var events []model.Event
		states := []model.Response{model.Made, model.Silent, model.Missed, model.NoResponse}
		for i := int64(1); i <= 40; i++ {
			att := map[string]model.Response{}
			if s := states[i%4]; s != model.NoResponse {
				att["u1"] = s
			}
			events = append(events, event(i, 1, i%2 == 0, att))
		}
		res := scoring.Score("u1", events)

		Convey("Then the percentage stays within bounds", func() {
			So(res.Percentage, ShouldBeGreaterThanOrEqualTo, 0)
			So(res.Percentage, ShouldBeLessThanOrEqualTo, 100)
			So(res.Earned, ShouldBeLessThanOrEqualTo, res.Possible)
		})
	})
}
