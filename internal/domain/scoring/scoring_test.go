package scoring_test

import (
	"testing"

	"github.com/okian/lineup/internal/domain/model"
	scoring "github.com/okian/lineup/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func striker() model.Player {
	return model.Player{
		ID:   "p-9",
		Role: "st",
		Attributes: model.Attributes{
			Shooting: 80, Speed: 70, Dribbling: 60,
			Passing: 40, Tackling: 20, Positioning: 50, Stamina: 50,
		},
	}
}

func forwardSlot(preferred ...string) model.Slot {
	return model.Slot{ID: "s-st", Category: model.Forward, PreferredRoles: preferred}
}

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer with default tables", t, func() {
		scorer := scoring.NewScorer()

		Convey("When the player's role is preferred by the slot", func() {
			score := scorer.Score(striker(), forwardSlot("st"))

			Convey("Then the base is 100 plus half the weighted attributes", func() {
				// 100 + 0.5 * (0.45*80 + 0.3*70 + 0.25*60)
				So(score, ShouldEqual, 136.0)
			})
		})

		Convey("When the role only matches the slot category", func() {
			p := striker()
			p.Role = "cf"

			Convey("Then the compatibility table supplies the base", func() {
				So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 116.0)
			})
		})

		Convey("When the role is from an unrelated category", func() {
			p := striker()
			p.Role = "cb"

			Convey("Then only attributes contribute", func() {
				So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 36.0)
			})
		})

		Convey("When the role is unknown", func() {
			p := striker()
			p.Role = "libero-deluxe"

			Convey("Then the base is zero", func() {
				So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 36.0)
			})
		})

		Convey("When the slot category has no weight profile", func() {
			p := model.Player{Role: "st", Attributes: model.Attributes{
				Speed: 70, Passing: 70, Tackling: 70, Shooting: 70, Dribbling: 70, Positioning: 70, Stamina: 70,
			}}
			slot := model.Slot{ID: "s-x", Category: model.Category("sweeper")}

			Convey("Then attributes are weighted uniformly", func() {
				So(scorer.Score(p, slot), ShouldEqual, 35.0)
			})
		})

		Convey("When the player is unavailable", func() {
			p := striker()
			p.Status = model.StatusInjured

			Convey("Then the score is cut to 30 percent", func() {
				So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 41.0)
			})
		})

		Convey("When form and morale vary", func() {
			best := striker()
			best.Form, best.Morale = model.Excellent, model.Excellent
			worst := striker()
			worst.Form, worst.Morale = model.Terrible, model.Terrible

			Convey("Then multipliers are applied and rounded", func() {
				So(scorer.Score(best, forwardSlot("st")), ShouldEqual, 172.0)
				So(scorer.Score(worst, forwardSlot("st")), ShouldEqual, 76.0)
			})

			Convey("And excellent strictly beats terrible", func() {
				So(scorer.Score(best, forwardSlot("st")), ShouldBeGreaterThan, scorer.Score(worst, forwardSlot("st")))
			})
		})

		Convey("When a player has no attributes and an unknown role", func() {
			p := model.Player{ID: "empty", Role: "??", Form: model.Terrible, Status: model.StatusSuspended}

			Convey("Then the score is zero and never negative", func() {
				So(scorer.Score(p, forwardSlot()), ShouldEqual, 0.0)
			})
		})

		Convey("When a role is spelled as a category name", func() {
			p := striker()
			p.Role = "forward"

			Convey("Then it resolves to that category", func() {
				So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 116.0)
			})
		})
	})
}

func TestScorer_Tables(t *testing.T) {
	Convey("Given synthetic tables", t, func() {
		tables := scoring.Tables{
			PreferredBase:  10,
			AttributeScale: 1,
			CategoryCompat: map[model.Category]map[model.Category]float64{
				model.Forward: {model.Forward: 5},
			},
			AttributeWeights: map[model.Category]map[string]float64{
				model.Forward: {model.AttrShooting: 1},
			},
		}
		scorer := scoring.NewScorer(scoring.WithTables(tables))

		Convey("Then the injected coefficients drive the score", func() {
			So(scorer.Score(striker(), forwardSlot("st")), ShouldEqual, 90.0)
			p := striker()
			p.Role = "cf"
			So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 85.0)
		})

		Convey("And nil maps keep their defaults", func() {
			So(scorer.Tables().FormMultipliers[model.Excellent], ShouldEqual, 1.15)
			So(scorer.Tables().RoleCategories["cb"], ShouldEqual, model.Defender)
		})
	})

	Convey("Given tables with a zero unavailable penalty", t, func() {
		tables := scoring.DefaultTables()
		tables.UnavailablePenalty = 0
		scorer := scoring.NewScorer(scoring.WithTables(tables))

		Convey("Then unavailable players score nothing", func() {
			p := striker()
			p.Status = model.StatusInjured
			So(scorer.Tables().UnavailablePenalty, ShouldEqual, 0.0)
			So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 0.0)
		})
	})

	Convey("Given multipliers keyed in mixed case", t, func() {
		tables := scoring.DefaultTables()
		tables.FormMultipliers = map[model.Level]float64{
			"excellent": 1.15, "Excellent": 1.3, " GOOD ": 1.1,
		}
		scorer := scoring.NewScorer(scoring.WithTables(tables))

		Convey("Then keys are folded to lower case and the explicit spelling wins", func() {
			So(scorer.Tables().FormMultipliers, ShouldResemble, map[model.Level]float64{
				model.Excellent: 1.3, model.Good: 1.1,
			})
			p := striker()
			p.Form = model.Excellent
			// 136 * 1.3
			So(scorer.Score(p, forwardSlot("st")), ShouldEqual, 177.0)
		})
	})
}

func TestScorer_Deterministic(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer := scoring.NewScorer()
		p := striker()
		p.Form, p.Morale = model.Good, model.Poor

		Convey("Then repeated calls return the same score", func() {
			first := scorer.Score(p, forwardSlot("st"))
			for i := 0; i < 20; i++ {
				So(scorer.Score(p, forwardSlot("st")), ShouldEqual, first)
			}
		})
	})
}
