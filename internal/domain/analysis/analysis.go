// Package analysis grades an assigned formation and lists what to fix.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/scoring"
)

// Tier is a qualitative fitness bucket.
type Tier string

// Tiers and their lower bounds.
const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"

	excellentFloor = 90
	goodFloor      = 70
	averageFloor   = 50
)

// Priority orders recommendations.
type Priority string

// Priorities, highest first.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// DefaultReviewThreshold flags occupied slots scoring below it.
const DefaultReviewThreshold = 60

const (
	chemistryBase      = 75
	chemistryRoleBonus = 20
)

var chemistryForm = map[model.Level]float64{
	model.Excellent: 10,
	model.Good:      5,
	model.Average:   0,
	model.Poor:      -5,
	model.Terrible:  -10,
}

// SlotReport grades a single slot.
type SlotReport struct {
	SlotID    string         `json:"slot_id"`
	PlayerID  string         `json:"player_id,omitempty"`
	Category  model.Category `json:"category"`
	Score     float64        `json:"score"`
	Tier      Tier           `json:"tier,omitempty"`
	Chemistry float64        `json:"chemistry"`
}

// Strength is the average score per line.
type Strength struct {
	Goalkeeper float64 `json:"goalkeeper"`
	Defense    float64 `json:"defense"`
	Midfield   float64 `json:"midfield"`
	Attack     float64 `json:"attack"`
}

// TierCounts tallies occupied slots per tier.
type TierCounts struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

// Recommendation is an actionable finding for a slot.
type Recommendation struct {
	SlotID     string   `json:"slot_id"`
	PlayerID   string   `json:"player_id,omitempty"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Priority   Priority `json:"priority"`
}

// Report is the read-only result of Analyze.
type Report struct {
	Formation       string           `json:"formation"`
	Slots           []SlotReport     `json:"slots"`
	Strength        Strength         `json:"strength"`
	Overall         float64          `json:"overall"`
	Chemistry       float64          `json:"chemistry"`
	Occupied        int              `json:"occupied"`
	Tiers           TierCounts       `json:"tiers"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithReviewThreshold sets the score under which an occupied slot is flagged.
func WithReviewThreshold(v float64) Option {
	return func(a *Analyzer) {
		if v > 0 {
			a.threshold = v
		}
	}
}

// Analyzer builds formation reports.
type Analyzer struct {
	scorer    *scoring.Scorer
	threshold float64
}

// New creates an analyzer over scorer.
func New(scorer *scoring.Scorer, opts ...Option) *Analyzer {
	if scorer == nil {
		scorer = scoring.NewScorer()
	}
	a := &Analyzer{scorer: scorer, threshold: DefaultReviewThreshold}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classify maps a score to its tier.
func Classify(score float64) Tier {
	switch {
	case score >= excellentFloor:
		return TierExcellent
	case score >= goodFloor:
		return TierGood
	case score >= averageFloor:
		return TierAverage
	default:
		return TierPoor
	}
}

// Analyze grades every slot of formation against roster. Slots whose player
// is missing from the roster count as open.
func (a *Analyzer) Analyze(formation model.Formation, roster []model.Player) Report {
	rep := Report{
		Formation:       formation.Name,
		Slots:           make([]SlotReport, 0, len(formation.Slots)),
		Recommendations: []Recommendation{},
	}
	byCategory := make(map[model.Category][]float64, len(model.Categories))
	var scores, chemistry []float64

	for _, slot := range formation.Slots {
		row := SlotReport{SlotID: slot.ID, Category: slot.Category}
		idx := model.FindPlayer(roster, slot.PlayerID)
		if idx < 0 {
			rep.Slots = append(rep.Slots, row)
			rep.Recommendations = append(rep.Recommendations, openSlot(slot))
			continue
		}

		pl := roster[idx]
		row.PlayerID = pl.ID
		row.Score = a.scorer.Score(pl, slot)
		row.Tier = Classify(row.Score)
		row.Chemistry = a.chemistry(pl, slot)
		rep.Slots = append(rep.Slots, row)

		rep.Occupied++
		rep.Tiers.add(row.Tier)
		scores = append(scores, row.Score)
		chemistry = append(chemistry, row.Chemistry)
		byCategory[slot.Category] = append(byCategory[slot.Category], row.Score)

		if rec, ok := a.review(pl, slot, row.Score); ok {
			rep.Recommendations = append(rep.Recommendations, rec)
		}
	}

	rep.Strength = Strength{
		Goalkeeper: mean(byCategory[model.Goalkeeper]),
		Defense:    mean(byCategory[model.Defender]),
		Midfield:   mean(byCategory[model.Midfielder]),
		Attack:     mean(byCategory[model.Forward]),
	}
	rep.Overall = mean(scores)
	rep.Chemistry = mean(chemistry)

	sort.SliceStable(rep.Recommendations, func(i, j int) bool {
		return rep.Recommendations[i].Priority.rank() > rep.Recommendations[j].Priority.rank()
	})
	return rep
}

func (a *Analyzer) chemistry(p model.Player, slot model.Slot) float64 {
	c := float64(chemistryBase)
	if slot.Prefers(p.Role) {
		c += chemistryRoleBonus
	}
	c += chemistryForm[p.Form.Normalize()]
	return math.Max(0, math.Min(100, c))
}

func (a *Analyzer) review(p model.Player, slot model.Slot, score float64) (Recommendation, bool) {
	if !p.Available() {
		return Recommendation{
			SlotID:     slot.ID,
			PlayerID:   p.ID,
			Issue:      fmt.Sprintf("%s is %s", p.ID, statusText(p.Status)),
			Suggestion: fmt.Sprintf("replace %s with an available %s", p.ID, slot.Category),
			Priority:   PriorityHigh,
		}, true
	}
	if score >= a.threshold {
		return Recommendation{}, false
	}
	return Recommendation{
		SlotID:     slot.ID,
		PlayerID:   p.ID,
		Issue:      fmt.Sprintf("%s scores %.0f in %s", p.ID, score, slot.ID),
		Suggestion: fmt.Sprintf("consider a natural %s for %s", slot.Category, slot.ID),
		Priority:   lowScorePriority(a.threshold - score),
	}, true
}

// lowScorePriority grows with the distance below the review threshold.
func lowScorePriority(gap float64) Priority {
	switch {
	case gap > 20:
		return PriorityHigh
	case gap > 10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func openSlot(slot model.Slot) Recommendation {
	return Recommendation{
		SlotID:     slot.ID,
		Issue:      fmt.Sprintf("no player assigned to %s", slot.ID),
		Suggestion: fmt.Sprintf("assign a %s to %s", slot.Category, slot.ID),
		Priority:   PriorityHigh,
	}
}

func statusText(s model.Status) string {
	if s == "" {
		return string(model.StatusUnavailable)
	}
	return string(s)
}

func (t *TierCounts) add(tier Tier) {
	switch tier {
	case TierExcellent:
		t.Excellent++
	case TierGood:
		t.Good++
	case TierAverage:
		t.Average++
	default:
		t.Poor++
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return math.Round(stat.Mean(xs, nil)*10) / 10
}
