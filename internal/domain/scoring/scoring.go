// Package scoring computes how well a player fits a formation slot.
package scoring

import (
	"math"
	"slices"
	"strings"

	"github.com/okian/lineup/internal/domain/model"
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithTables replaces the coefficient tables. Scalars are taken as given, so
// start from DefaultTables to change a few of them; nil maps keep the default
// maps. Level keys are matched case-insensitively.
func WithTables(t Tables) Option {
	return func(s *Scorer) {
		s.tables.PreferredBase = t.PreferredBase
		s.tables.AttributeScale = t.AttributeScale
		s.tables.UnavailablePenalty = t.UnavailablePenalty
		if t.RoleCategories != nil {
			s.tables.RoleCategories = t.RoleCategories
		}
		if t.CategoryCompat != nil {
			s.tables.CategoryCompat = t.CategoryCompat
		}
		if t.AttributeWeights != nil {
			s.tables.AttributeWeights = t.AttributeWeights
		}
		if t.FormMultipliers != nil {
			s.tables.FormMultipliers = lowerLevels(t.FormMultipliers)
		}
		if t.MoraleMultipliers != nil {
			s.tables.MoraleMultipliers = lowerLevels(t.MoraleMultipliers)
		}
	}
}

// Scorer is a pure, deterministic fitness function. It is safe for
// concurrent use once built.
type Scorer struct {
	tables Tables
}

// NewScorer creates a scorer over DefaultTables with options applied.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{tables: DefaultTables()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the tables in use.
func (s *Scorer) Tables() Tables { return s.tables }

// Score returns the fit of p for slot. Never negative, not clamped above.
func (s *Scorer) Score(p model.Player, slot model.Slot) float64 {
	score := s.base(p, slot) + s.attributes(p, slot.Category)*s.tables.AttributeScale

	if !p.Available() {
		score *= s.tables.UnavailablePenalty
	}
	score *= multiplier(s.tables.FormMultipliers, p.Form)
	score *= multiplier(s.tables.MoraleMultipliers, p.Morale)

	return math.Max(0, math.Round(score))
}

// Matches reports whether p's role is preferred by slot.
func (s *Scorer) Matches(p model.Player, slot model.Slot) bool {
	return slot.Prefers(p.Role)
}

func (s *Scorer) base(p model.Player, slot model.Slot) float64 {
	if slot.Prefers(p.Role) {
		return s.tables.PreferredBase
	}
	cat, ok := s.tables.CategoryOf(p.Role)
	if !ok {
		return 0
	}
	return s.tables.CategoryCompat[cat][slot.Category]
}

// attributes is the weighted attribute sum for the slot category. Categories
// without a weight profile weigh every attribute equally.
func (s *Scorer) attributes(p model.Player, cat model.Category) float64 {
	weights, ok := s.tables.AttributeWeights[cat]
	if !ok || len(weights) == 0 {
		sum := 0.0
		for _, name := range model.AttributeNames {
			sum += p.Attributes.Get(name)
		}
		return sum / float64(len(model.AttributeNames))
	}
	// Iterate in vector order so float summation is reproducible.
	sum := 0.0
	for _, name := range model.AttributeNames {
		if w, ok := weights[name]; ok {
			sum += w * p.Attributes.Get(name)
		}
	}
	return sum
}

func multiplier(table map[model.Level]float64, l model.Level) float64 {
	if m, ok := table[l.Normalize()]; ok {
		return m
	}
	return 1
}

// lowerLevels lower-cases level keys. A key spelled in another case wins over
// its lower-case twin, since it can only come from an explicit override.
func lowerLevels(in map[model.Level]float64) map[model.Level]float64 {
	out := make(map[model.Level]float64, len(in))
	var mixed []model.Level
	for k, v := range in {
		if lowerLevel(k) != k {
			mixed = append(mixed, k)
			continue
		}
		out[k] = v
	}
	slices.Sort(mixed)
	for _, k := range mixed {
		out[lowerLevel(k)] = in[k]
	}
	return out
}

func lowerLevel(l model.Level) model.Level {
	return model.Level(strings.ToLower(strings.TrimSpace(string(l))))
}
