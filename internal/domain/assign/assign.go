// Package assign places a team's roster into formation slots: optimal
// matching for available players, then a bounded greedy fill from the
// unavailable pool.
package assign

import (
	"time"

	"github.com/okian/lineup/internal/domain/matching"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/scoring"
)

// DefaultLookahead bounds the greedy fallback scan per slot.
const DefaultLookahead = 10

// Assignment is the orchestrator output.
type Assignment struct {
	Formation model.Formation `json:"formation"`
	// Scores is aligned with Formation.Slots; open slots score 0.
	Scores []float64 `json:"scores"`
	// Matched counts slots filled by the optimal phase, Fallback those
	// filled greedily from unavailable players.
	Matched  int `json:"matched"`
	Fallback int `json:"fallback"`
}

// Option applies a configuration option to the Orchestrator.
type Option func(*Orchestrator)

// WithLookahead sets how many remaining candidates the greedy fill inspects per slot.
func WithLookahead(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.lookahead = n
		}
	}
}

// WithDurationObserver receives the wall-clock time of every Assign call.
func WithDurationObserver(fn func(time.Duration)) Option {
	return func(o *Orchestrator) {
		o.observe = fn
	}
}

// Orchestrator runs the assignment pipeline. It holds no per-call state.
type Orchestrator struct {
	scorer    *scoring.Scorer
	lookahead int
	observe   func(time.Duration)
}

// New creates an orchestrator over scorer.
func New(scorer *scoring.Scorer, opts ...Option) *Orchestrator {
	if scorer == nil {
		scorer = scoring.NewScorer()
	}
	o := &Orchestrator{scorer: scorer, lookahead: DefaultLookahead}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Assign fills a cleared copy of formation with players from team. An empty
// team selects the whole roster. The input formation is not modified.
func (o *Orchestrator) Assign(roster []model.Player, formation model.Formation, team string) Assignment {
	start := time.Now()
	defer func() {
		if o.observe != nil {
			o.observe(time.Since(start))
		}
	}()

	out := Assignment{
		Formation: formation.Cleared(),
		Scores:    make([]float64, len(formation.Slots)),
	}
	slots := out.Formation.Slots
	if len(slots) == 0 {
		return out
	}

	available, unavailable := Partition(roster, team)
	if len(available) > 0 {
		scores := make([][]float64, len(available))
		for i, p := range available {
			scores[i] = make([]float64, len(slots))
			for j, s := range slots {
				scores[i][j] = o.scorer.Score(p, s)
			}
		}
		for i, j := range matching.Solve(scores) {
			if j == matching.Unassigned {
				continue
			}
			slots[j].PlayerID = available[i].ID
			out.Scores[j] = scores[i][j]
			out.Matched++
		}
	}

	out.Fallback = o.fill(slots, out.Scores, unavailable)
	return out
}

// fill assigns open slots in order from candidates, looking at no more than
// lookahead of the remaining candidates per slot.
func (o *Orchestrator) fill(slots []model.Slot, scores []float64, candidates []model.Player) int {
	remaining := append([]model.Player(nil), candidates...)
	filled := 0
	for j := range slots {
		if len(remaining) == 0 {
			break
		}
		if slots[j].Occupied() {
			continue
		}
		window := min(o.lookahead, len(remaining))
		best, bestScore := 0, -1.0
		for k := 0; k < window; k++ {
			if sc := o.scorer.Score(remaining[k], slots[j]); sc > bestScore {
				best, bestScore = k, sc
			}
		}
		slots[j].PlayerID = remaining[best].ID
		scores[j] = bestScore
		remaining = append(remaining[:best], remaining[best+1:]...)
		filled++
	}
	return filled
}

// Partition selects team members (all players when team is empty) and splits
// them by availability, preserving roster order. Players with empty or
// repeated ids are skipped.
func Partition(roster []model.Player, team string) (available, unavailable []model.Player) {
	seen := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		if team != "" && p.Team != team {
			continue
		}
		if p.ID == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if p.Available() {
			available = append(available, p)
		} else {
			unavailable = append(unavailable, p)
		}
	}
	return available, unavailable
}
