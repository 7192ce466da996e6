package omen_test

import (
	"testing"

	"github.com/bootyhunt/server/internal/domain/omen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("Given the omen catalog", t, func() {
		Convey("Then it holds exactly 7 omens in a fixed order", func() {
			So(omen.Count(), ShouldEqual, 7)

			first, ok := omen.ByID("red_tide")
			So(ok, ShouldBeTrue)
			So(first.Name, ShouldEqual, "Red Tide")

			last, ok := omen.ByID("fair_winds")
			So(ok, ShouldBeTrue)
			So(last.Modifiers["speed_multiplier"], ShouldEqual, 1.10)
		})

		Convey("Then unknown identifiers are reported", func() {
			_, ok := omen.ByID("kraken_wake")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestForWeek(t *testing.T) {
	Convey("Given deterministic selection", t, func() {
		Convey("Then the same week always picks the same omen", func() {
			a := omen.ForWeek("2026-W09")
			b := omen.ForWeek("2026-W09")
			So(a.ID, ShouldEqual, b.ID)
			So(a.Name, ShouldEqual, b.Name)
		})

		Convey("Then every pick is a catalog member", func() {
			for _, key := range []string{"2025-W52", "2026-W01", "2026-W02", "2026-W03", "2026-W33"} {
				picked := omen.ForWeek(key)
				_, ok := omen.ByID(picked.ID)
				So(ok, ShouldBeTrue)
				So(picked.Modifiers, ShouldNotBeEmpty)
			}
		})
	})
}
