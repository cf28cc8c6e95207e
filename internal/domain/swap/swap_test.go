package swap_test

import (
	"testing"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/swap"
	. "github.com/smartystreets/goconvey/convey"
)

func p(id, role string, x, y float64) model.Player {
	return model.Player{
		ID: id, Role: role, Team: "home",
		Attributes: model.Attributes{Speed: 60, Passing: 60, Tackling: 60, Shooting: 60, Dribbling: 60, Positioning: 60, Stamina: 60},
		Position:   model.Position{X: x, Y: y},
	}
}

func fixture() (model.Formation, []model.Player) {
	f := model.Formation{
		Name: "test",
		Slots: []model.Slot{
			{ID: "gk", Category: model.Goalkeeper, PreferredRoles: []string{"gk"}, PlayerID: "gk1", Default: model.Position{X: 0.5, Y: 0.05}},
			{ID: "lb", Category: model.Defender, PreferredRoles: []string{"lb"}, Default: model.Position{X: 0.15, Y: 0.25}},
			{ID: "cm", Category: model.Midfielder, PreferredRoles: []string{"cm"}, PlayerID: "s1", Default: model.Position{X: 0.5, Y: 0.45}},
			{ID: "st", Category: model.Forward, PreferredRoles: []string{"st"}, PlayerID: "t1", Default: model.Position{X: 0.5, Y: 0.8}},
			{ID: "rw", Category: model.Forward, PreferredRoles: []string{"rw"}, Default: model.Position{X: 0.85, Y: 0.75}},
		},
	}
	roster := []model.Player{
		p("gk1", "gk", 0.5, 0.05),
		p("s1", "st", 0.5, 0.45),
		p("t1", "cm", 0.5, 0.8),
		p("t2", "st", 0.1, 0.1),
		p("b1", "st", 0.55, 0.8),
		p("b2", "cf", 0.1, 0.1),
	}
	visitor := p("v1", "st", 0.5, 0.79)
	visitor.Team = "away"
	roster = append(roster, visitor)
	return f, roster
}

func kinds(recs []swap.Recommendation) []swap.Kind {
	out := make([]swap.Kind, len(recs))
	for i, r := range recs {
		out[i] = r.Kind
	}
	return out
}

func TestAdvisor_Advise(t *testing.T) {
	Convey("Given a formation where a striker plays in midfield", t, func() {
		f, roster := fixture()
		a := swap.New(nil)

		Convey("When proposing the striker for the striker slot held by a midfielder", func() {
			advice := a.Advise("s1", "st", "t1", f, roster)

			Convey("Then swap, bench and reassign are ranked by score", func() {
				So(kinds(advice.Recommendations), ShouldResemble, []swap.Kind{swap.KindSwap, swap.KindBench, swap.KindReassign})
				So(advice.Recommendations[0].Score, ShouldEqual, 260.0)
				So(advice.Recommendations[0].OtherSlotID, ShouldEqual, "cm")
				So(advice.Recommendations[1].Score, ShouldEqual, 130.0)
				So(advice.Recommendations[2].SlotID, ShouldEqual, "rw")
				So(advice.Recommendations[2].Score, ShouldEqual, 70.0)
			})
		})

		Convey("When the displaced player would score below the floor in the source's slot", func() {
			f.Slots[3].PlayerID = "t2"
			advice := a.Advise("gk1", "st", "t2", f, roster)

			Convey("Then the swap is absent but bench is present", func() {
				So(kinds(advice.Recommendations), ShouldNotContain, swap.KindSwap)
				So(kinds(advice.Recommendations), ShouldContain, swap.KindBench)
			})

			Convey("And the reassignment ranks first", func() {
				So(advice.Recommendations[0].Kind, ShouldEqual, swap.KindReassign)
				So(advice.Recommendations[0].Score, ShouldEqual, 110.0)
			})
		})

		Convey("When the swap floor is lowered", func() {
			f.Slots[3].PlayerID = "t2"
			advice := swap.New(nil, swap.WithSwapFloor(0)).Advise("gk1", "st", "t2", f, roster)

			Convey("Then the weak swap is proposed", func() {
				So(kinds(advice.Recommendations), ShouldContain, swap.KindSwap)
			})
		})

		Convey("When the source holds no slot", func() {
			advice := a.Advise("b1", "st", "t1", f, roster)

			Convey("Then there is no swap", func() {
				So(kinds(advice.Recommendations), ShouldNotContain, swap.KindSwap)
				So(kinds(advice.Recommendations), ShouldContain, swap.KindBench)
			})
		})

		Convey("When the reassign floor cannot be met", func() {
			advice := swap.New(nil, swap.WithReassignFloor(500)).Advise("s1", "st", "t1", f, roster)

			Convey("Then reassign is dropped", func() {
				So(kinds(advice.Recommendations), ShouldNotContain, swap.KindReassign)
			})
		})

		Convey("When ids are unknown", func() {
			Convey("Then an unknown source yields nothing", func() {
				So(a.Advise("ghost", "st", "t1", f, roster).Recommendations, ShouldBeEmpty)
			})

			Convey("Then an unknown slot yields nothing", func() {
				So(a.Advise("s1", "nowhere", "t1", f, roster).Recommendations, ShouldBeEmpty)
			})

			Convey("Then an unknown target leaves only bench", func() {
				advice := a.Advise("s1", "st", "ghost", f, roster)
				So(kinds(advice.Recommendations), ShouldResemble, []swap.Kind{swap.KindBench})
			})
		})

		Convey("When looking for nearby alternatives", func() {
			advice := a.Advise("s1", "st", "t1", f, roster)

			Convey("Then unassigned teammates near the slot are listed", func() {
				So(advice.Nearby, ShouldHaveLength, 1)
				So(advice.Nearby[0].PlayerID, ShouldEqual, "b1")
				So(advice.Nearby[0].Score, ShouldEqual, 130.0)
			})

			Convey("And a zero radius disables the lookup", func() {
				So(swap.New(nil, swap.WithNearbyRadius(0)).Advise("s1", "st", "t1", f, roster).Nearby, ShouldBeEmpty)
			})
		})

		Convey("When the same advice is requested twice", func() {
			Convey("Then the results are identical", func() {
				So(a.Advise("s1", "st", "t1", f, roster), ShouldResemble, a.Advise("s1", "st", "t1", f, roster))
			})
		})

		Convey("Then the input formation is never mutated", func() {
			before := f.Clone()
			a.Advise("s1", "st", "t1", f, roster)
			So(f, ShouldResemble, before)
		})
	})
}
