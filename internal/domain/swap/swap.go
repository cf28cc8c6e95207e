// Package swap ranks the alternatives to a proposed player exchange.
package swap

import (
	"fmt"
	"sort"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/scoring"
	"github.com/okian/lineup/internal/domain/spatial"
)

// Kind names a recommendation.
type Kind string

// Recommendation kinds.
const (
	KindSwap     Kind = "swap"
	KindBench    Kind = "bench"
	KindReassign Kind = "reassign"
)

// Default floors and proximity settings.
const (
	DefaultSwapFloor     = 50
	DefaultReassignFloor = 40
	DefaultNearbyRadius  = 0.25
)

// Recommendation is one ranked action.
type Recommendation struct {
	Kind     Kind    `json:"kind"`
	Score    float64 `json:"score"`
	PlayerID string  `json:"player_id"`
	SlotID   string  `json:"slot_id"`
	// OtherPlayerID and OtherSlotID describe the counterpart move, if any.
	OtherPlayerID string `json:"other_player_id,omitempty"`
	OtherSlotID   string `json:"other_slot_id,omitempty"`
	Description   string `json:"description"`
}

// Candidate is an unassigned teammate close to the target slot.
type Candidate struct {
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
}

// Advice is the advisor output. It never implies a mutation.
type Advice struct {
	Recommendations []Recommendation `json:"recommendations"`
	Nearby          []Candidate      `json:"nearby,omitempty"`
}

// Option applies a configuration option to the Advisor.
type Option func(*Advisor)

// WithSwapFloor sets the minimum score both sides of a swap must exceed.
func WithSwapFloor(v float64) Option {
	return func(a *Advisor) {
		if v >= 0 {
			a.swapFloor = v
		}
	}
}

// WithReassignFloor sets the minimum score for relocating the displaced player.
func WithReassignFloor(v float64) Option {
	return func(a *Advisor) {
		if v >= 0 {
			a.reassignFloor = v
		}
	}
}

// WithNearbyRadius sets the radius used to collect nearby candidates. Zero disables them.
func WithNearbyRadius(r float64) Option {
	return func(a *Advisor) {
		if r >= 0 {
			a.nearbyRadius = r
		}
	}
}

// WithCellSize sets the spatial grid cell size.
func WithCellSize(size float64) Option {
	return func(a *Advisor) {
		if size > 0 {
			a.cellSize = size
		}
	}
}

// Advisor produces swap, bench and reassign recommendations.
type Advisor struct {
	scorer        *scoring.Scorer
	swapFloor     float64
	reassignFloor float64
	nearbyRadius  float64
	cellSize      float64
}

// New creates an advisor over scorer.
func New(scorer *scoring.Scorer, opts ...Option) *Advisor {
	if scorer == nil {
		scorer = scoring.NewScorer()
	}
	a := &Advisor{
		scorer:        scorer,
		swapFloor:     DefaultSwapFloor,
		reassignFloor: DefaultReassignFloor,
		nearbyRadius:  DefaultNearbyRadius,
		cellSize:      spatial.DefaultCellSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Advise evaluates moving sourceID into targetSlotID, currently held by
// targetID. Unknown source or slot ids give empty advice; an unknown target
// player leaves only the bench option.
func (a *Advisor) Advise(sourceID, targetSlotID, targetID string, formation model.Formation, roster []model.Player) Advice {
	advice := Advice{Recommendations: []Recommendation{}}

	si := model.FindPlayer(roster, sourceID)
	tj := formation.SlotByID(targetSlotID)
	if si < 0 || tj < 0 {
		return advice
	}
	source := roster[si]
	targetSlot := formation.Slots[tj]
	toTarget := a.scorer.Score(source, targetSlot)

	ti := model.FindPlayer(roster, targetID)
	if ti >= 0 && ti != si {
		target := roster[ti]
		if sj := formation.SlotOf(source.ID); sj >= 0 && sj != tj {
			sourceSlot := formation.Slots[sj]
			back := a.scorer.Score(target, sourceSlot)
			if toTarget > a.swapFloor && back > a.swapFloor {
				advice.Recommendations = append(advice.Recommendations, Recommendation{
					Kind:          KindSwap,
					Score:         toTarget + back,
					PlayerID:      source.ID,
					SlotID:        targetSlot.ID,
					OtherPlayerID: target.ID,
					OtherSlotID:   sourceSlot.ID,
					Description:   fmt.Sprintf("swap %s (%s) with %s (%s)", source.ID, sourceSlot.ID, target.ID, targetSlot.ID),
				})
			}
		}
	}

	bench := Recommendation{
		Kind:        KindBench,
		Score:       toTarget,
		PlayerID:    source.ID,
		SlotID:      targetSlot.ID,
		Description: fmt.Sprintf("move %s into %s", source.ID, targetSlot.ID),
	}
	if ti >= 0 {
		bench.OtherPlayerID = roster[ti].ID
		bench.Description += fmt.Sprintf(" and bench %s", roster[ti].ID)
	}
	advice.Recommendations = append(advice.Recommendations, bench)

	if ti >= 0 && ti != si {
		if rec, ok := a.reassign(roster[ti], formation, tj); ok {
			advice.Recommendations = append(advice.Recommendations, rec)
		}
	}

	sort.SliceStable(advice.Recommendations, func(i, j int) bool {
		return advice.Recommendations[i].Score > advice.Recommendations[j].Score
	})

	advice.Nearby = a.nearby(source, targetSlot, formation, roster)
	return advice
}

// reassign finds the best open slot, other than the target slot, for the
// displaced player.
func (a *Advisor) reassign(target model.Player, formation model.Formation, skip int) (Recommendation, bool) {
	best, bestScore := -1, 0.0
	for j, s := range formation.Slots {
		if j == skip || s.Occupied() {
			continue
		}
		if sc := a.scorer.Score(target, s); best < 0 || sc > bestScore {
			best, bestScore = j, sc
		}
	}
	if best < 0 || bestScore <= a.reassignFloor {
		return Recommendation{}, false
	}
	slot := formation.Slots[best]
	return Recommendation{
		Kind:        KindReassign,
		Score:       bestScore,
		PlayerID:    target.ID,
		SlotID:      slot.ID,
		Description: fmt.Sprintf("relocate %s to open slot %s", target.ID, slot.ID),
	}, true
}

// nearby lists unassigned teammates of source standing within the radius of
// the target slot's default position, best fit first.
func (a *Advisor) nearby(source model.Player, slot model.Slot, formation model.Formation, roster []model.Player) []Candidate {
	if a.nearbyRadius <= 0 {
		return nil
	}
	grid := spatial.NewGrid(a.cellSize)
	for _, p := range roster {
		if p.ID == source.ID || p.Team != source.Team || formation.SlotOf(p.ID) >= 0 {
			continue
		}
		grid.Insert(p)
	}

	found := grid.QueryRadius(slot.Default.X, slot.Default.Y, a.nearbyRadius)
	if len(found) == 0 {
		return nil
	}
	out := make([]Candidate, len(found))
	for i, p := range found {
		out[i] = Candidate{PlayerID: p.ID, Score: a.scorer.Score(p, slot)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
