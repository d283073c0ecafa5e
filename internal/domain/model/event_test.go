package model_test

import (
	"testing"
	"time"

	model "github.com/okian/rollcall/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestResponse(t *testing.T) {
	convey.Convey("Given response states", t, func() {
		convey.Convey("When checking the recordable states", func() {
			convey.Convey("Then MADE, SILENT and MISSED are valid", func() {
				convey.So(model.Made.Valid(), convey.ShouldBeTrue)
				convey.So(model.Silent.Valid(), convey.ShouldBeTrue)
				convey.So(model.Missed.Valid(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When checking non-recordable states", func() {
			convey.Convey("Then the empty state and unknown strings are invalid", func() {
				convey.So(model.NoResponse.Valid(), convey.ShouldBeFalse)
				convey.So(model.Response("MAYBE").Valid(), convey.ShouldBeFalse)
				convey.So(model.Response("made").Valid(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestEventResponseFor(t *testing.T) {
	convey.Convey("Given an event with attendance", t, func() {
		event := model.Event{
			ID:         1,
			PointValue: 1,
			Attendance: map[string]model.Response{
				"alice": model.Made,
				"bob":   model.Missed,
			},
		}

		convey.Convey("When looking up a recorded user", func() {
			convey.Convey("Then the stored response comes back", func() {
				convey.So(event.ResponseFor("alice"), convey.ShouldEqual, model.Made)
				convey.So(event.ResponseFor("bob"), convey.ShouldEqual, model.Missed)
			})
		})

		convey.Convey("When looking up an unknown user", func() {
			convey.Convey("Then the result is the absent marker", func() {
				convey.So(event.ResponseFor("carol"), convey.ShouldEqual, model.NoResponse)
			})
		})
	})
}

func TestEventClone(t *testing.T) {
	convey.Convey("Given an event", t, func() {
		ts := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
		event := model.Event{
			ID:               7,
			CreatedAt:        ts,
			OccursAt:         ts,
			PointValue:       0.5,
			PenalizesAbsence: true,
			Periods:          model.PeriodKeys{Month: "2026-03", Quarter: "2026-Q1"},
			Title:            "station cleanup",
			Attendance:       map[string]model.Response{"alice": model.Made},
		}

		convey.Convey("When cloning it", func() {
			clone := event.Clone()

			convey.Convey("Then scalar fields carry over", func() {
				convey.So(clone.ID, convey.ShouldEqual, event.ID)
				convey.So(clone.PointValue, convey.ShouldEqual, event.PointValue)
				convey.So(clone.Periods, convey.ShouldResemble, event.Periods)
			})

			convey.Convey("Then mutating the clone's attendance leaves the original alone", func() {
				clone.Attendance["alice"] = model.Missed
				clone.Attendance["bob"] = model.Silent

				convey.So(event.Attendance["alice"], convey.ShouldEqual, model.Made)
				convey.So(event.Attendance, convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When cloning an event with nil attendance", func() {
			clone := model.Event{ID: 2}.Clone()

			convey.Convey("Then the clone gets a usable empty map", func() {
				convey.So(clone.Attendance, convey.ShouldNotBeNil)
				convey.So(clone.Attendance, convey.ShouldBeEmpty)
			})
		})
	})
}
