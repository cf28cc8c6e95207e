package analysis_test

import (
	"testing"

	"github.com/okian/lineup/internal/domain/analysis"
	"github.com/okian/lineup/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func flat(v float64) model.Attributes {
	return model.Attributes{Speed: v, Passing: v, Tackling: v, Shooting: v, Dribbling: v, Positioning: v, Stamina: v}
}

func fixture() (model.Formation, []model.Player) {
	f := model.Formation{
		Name: "4-3-3 test",
		Slots: []model.Slot{
			{ID: "gk", Category: model.Goalkeeper, PreferredRoles: []string{"gk"}, PlayerID: "gk1"},
			{ID: "cb", Category: model.Defender, PreferredRoles: []string{"cb"}, PlayerID: "d1"},
			{ID: "cm", Category: model.Midfielder, PreferredRoles: []string{"cm"}, PlayerID: "m1"},
			{ID: "st", Category: model.Forward, PreferredRoles: []string{"st"}, PlayerID: "f1"},
			{ID: "rw", Category: model.Forward, PreferredRoles: []string{"rw"}},
			{ID: "lb", Category: model.Defender, PreferredRoles: []string{"lb"}, PlayerID: "l1"},
			{ID: "rb", Category: model.Defender, PreferredRoles: []string{"rb"}, PlayerID: "r1"},
			{ID: "lcb", Category: model.Defender, PreferredRoles: []string{"cb"}, PlayerID: "c1"},
		},
	}
	roster := []model.Player{
		{ID: "gk1", Role: "gk", Attributes: flat(60)},
		{ID: "d1", Role: "st", Attributes: flat(60)},
		{ID: "m1", Role: "cb", Form: model.Terrible, Attributes: flat(60)},
		{ID: "f1", Role: "cf", Status: model.StatusInjured, Attributes: flat(60)},
		{ID: "l1", Role: "cm", Attributes: flat(60)},
		{ID: "r1", Role: "cm", Attributes: flat(20)},
		{ID: "c1", Role: "cm", Attributes: flat(40)},
	}
	return f, roster
}

func TestClassify(t *testing.T) {
	Convey("Given the tier thresholds", t, func() {
		So(analysis.Classify(130), ShouldEqual, analysis.TierExcellent)
		So(analysis.Classify(90), ShouldEqual, analysis.TierExcellent)
		So(analysis.Classify(89.9), ShouldEqual, analysis.TierGood)
		So(analysis.Classify(70), ShouldEqual, analysis.TierGood)
		So(analysis.Classify(50), ShouldEqual, analysis.TierAverage)
		So(analysis.Classify(49), ShouldEqual, analysis.TierPoor)
		So(analysis.Classify(0), ShouldEqual, analysis.TierPoor)
	})
}

func TestAnalyzer_Analyze(t *testing.T) {
	Convey("Given a partially filled formation", t, func() {
		f, roster := fixture()
		rep := analysis.New(nil).Analyze(f, roster)

		Convey("Then every slot is graded", func() {
			So(rep.Slots, ShouldHaveLength, 8)
			So(rep.Occupied, ShouldEqual, 7)
			So(rep.Slots[0].Score, ShouldEqual, 130.0)
			So(rep.Slots[0].Tier, ShouldEqual, analysis.TierExcellent)
			So(rep.Slots[2].Score, ShouldEqual, 49.0)
			So(rep.Slots[3].Score, ShouldEqual, 33.0)
			So(rep.Slots[4].PlayerID, ShouldEqual, "")
			So(rep.Slots[4].Tier, ShouldEqual, analysis.Tier(""))
		})

		Convey("Then tiers are tallied over occupied slots", func() {
			So(rep.Tiers, ShouldResemble, analysis.TierCounts{Excellent: 1, Good: 0, Average: 2, Poor: 4})
		})

		Convey("Then strength is averaged per line", func() {
			So(rep.Strength, ShouldResemble, analysis.Strength{
				Goalkeeper: 130, Defense: 48.8, Midfield: 49, Attack: 33,
			})
			So(rep.Overall, ShouldEqual, 58.1)
		})

		Convey("Then chemistry reflects role fit and form", func() {
			So(rep.Slots[0].Chemistry, ShouldEqual, 95.0)
			So(rep.Slots[2].Chemistry, ShouldEqual, 65.0)
			So(rep.Chemistry, ShouldEqual, 76.4)
		})

		Convey("Then recommendations are ordered by priority, then slot order", func() {
			var slots []string
			var prios []analysis.Priority
			for _, r := range rep.Recommendations {
				slots = append(slots, r.SlotID)
				prios = append(prios, r.Priority)
			}
			So(slots, ShouldResemble, []string{"cb", "st", "rw", "cm", "rb", "lcb"})
			So(prios, ShouldResemble, []analysis.Priority{
				analysis.PriorityHigh, analysis.PriorityHigh, analysis.PriorityHigh,
				analysis.PriorityMedium, analysis.PriorityMedium, analysis.PriorityLow,
			})
			So(rep.Recommendations[1].Issue, ShouldContainSubstring, "injured")
		})

		Convey("Then running again yields an equal report", func() {
			So(analysis.New(nil).Analyze(f, roster), ShouldResemble, rep)
		})

		Convey("Then the inputs are untouched", func() {
			f2, roster2 := fixture()
			So(f, ShouldResemble, f2)
			So(roster, ShouldResemble, roster2)
		})
	})
}

func TestAnalyzer_EdgeCases(t *testing.T) {
	Convey("Given edge-case formations", t, func() {
		a := analysis.New(nil)

		Convey("When the assigned player is missing from the roster", func() {
			f := model.Formation{Slots: []model.Slot{{ID: "gk", Category: model.Goalkeeper, PlayerID: "ghost"}}}
			rep := a.Analyze(f, nil)

			Convey("Then the slot is reported as open", func() {
				So(rep.Occupied, ShouldEqual, 0)
				So(rep.Recommendations, ShouldHaveLength, 1)
				So(rep.Recommendations[0].Priority, ShouldEqual, analysis.PriorityHigh)
				So(rep.Overall, ShouldEqual, 0.0)
			})
		})

		Convey("When the formation is empty", func() {
			rep := a.Analyze(model.Formation{}, nil)

			Convey("Then the report is empty but well formed", func() {
				So(rep.Slots, ShouldBeEmpty)
				So(rep.Recommendations, ShouldNotBeNil)
				So(rep.Recommendations, ShouldBeEmpty)
			})
		})

		Convey("When chemistry would exceed 100", func() {
			f := model.Formation{Slots: []model.Slot{{ID: "gk", Category: model.Goalkeeper, PreferredRoles: []string{"gk"}, PlayerID: "g"}}}
			roster := []model.Player{{ID: "g", Role: "gk", Form: model.Excellent, Attributes: flat(80)}}

			Convey("Then it is clamped", func() {
				So(a.Analyze(f, roster).Chemistry, ShouldEqual, 100.0)
			})
		})

		Convey("When the review threshold is lowered", func() {
			f, roster := fixture()
			rep := analysis.New(nil, analysis.WithReviewThreshold(40)).Analyze(f, roster)

			Convey("Then fewer low scores are flagged", func() {
				So(rep.Recommendations, ShouldHaveLength, 3)
			})
		})
	})
}
