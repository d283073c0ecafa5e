package period_test

import (
	"testing"
	"time"

	"github.com/okian/rollcall/internal/domain/period"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKeyer(t *testing.T) {
	Convey("Given a keyer in UTC", t, func() {
		keyer := period.NewKeyer()

		Convey("When bucketing a mid-month timestamp", func() {
			ts := time.Date(2026, 2, 14, 12, 30, 0, 0, time.UTC)
			month, quarter := keyer.Keys(ts)

			Convey("Then keys identify the month and quarter", func() {
				So(month, ShouldEqual, "2026-02")
				So(quarter, ShouldEqual, "2026-Q1")
			})
		})

		Convey("When bucketing timestamps across all quarters", func() {
			cases := map[time.Month]string{
				time.January:   "2026-Q1",
				time.March:     "2026-Q1",
				time.April:     "2026-Q2",
				time.June:      "2026-Q2",
				time.July:      "2026-Q3",
				time.September: "2026-Q3",
				time.October:   "2026-Q4",
				time.December:  "2026-Q4",
			}

			Convey("Then each month lands in its quarter", func() {
				for m, want := range cases {
					ts := time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC)
					So(keyer.Quarter(ts), ShouldEqual, want)
				}
			})
		})

		Convey("When bucketing the exact month boundary", func() {
			ts := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

			Convey("Then the boundary instant belongs to the starting period", func() {
				So(keyer.Month(ts), ShouldEqual, "2026-04")
				So(keyer.Quarter(ts), ShouldEqual, "2026-Q2")
			})
		})

		Convey("When comparing month keys lexicographically", func() {
			sep := keyer.Month(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
			oct := keyer.Month(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

			Convey("Then later months sort after earlier ones", func() {
				So(sep < oct, ShouldBeTrue)
			})
		})
	})

	Convey("Given a keyer in a fixed non-UTC zone", t, func() {
		est := time.FixedZone("EST", -5*60*60)
		keyer := period.NewKeyer(period.WithLocation(est))

		Convey("When the UTC date and the reference-zone date differ", func() {
			// 03:00 UTC on Jan 1 is still Dec 31 in the reference zone.
			ts := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)
			month, quarter := keyer.Keys(ts)

			Convey("Then the reference zone decides the bucket", func() {
				So(month, ShouldEqual, "2025-12")
				So(quarter, ShouldEqual, "2025-Q4")
			})
		})

		Convey("When the same instant is expressed in different zones", func() {
			utc := time.Date(2026, 6, 30, 23, 0, 0, 0, time.UTC)
			elsewhere := utc.In(time.FixedZone("X", 11*60*60))

			Convey("Then both yield identical keys", func() {
				m1, q1 := keyer.Keys(utc)
				m2, q2 := keyer.Keys(elsewhere)
				So(m1, ShouldEqual, m2)
				So(q1, ShouldEqual, q2)
			})
		})
	})
}
