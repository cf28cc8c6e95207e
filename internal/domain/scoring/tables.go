package scoring

import "github.com/okian/lineup/internal/domain/model"

// Tables holds every coefficient the scorer uses. It is loaded from
// configuration so tuning does not touch the algorithm.
type Tables struct {
	// PreferredBase is the base score when the player's role is preferred by the slot.
	PreferredBase float64 `koanf:"preferred_base" json:"preferred_base"`

	// AttributeScale multiplies the weighted attribute sum before it is added to the base.
	AttributeScale float64 `koanf:"attribute_scale" json:"attribute_scale"`

	// UnavailablePenalty multiplies the running score of unavailable players.
	UnavailablePenalty float64 `koanf:"unavailable_penalty" json:"unavailable_penalty"`

	// RoleCategories maps fine-grained roles to coarse categories.
	RoleCategories map[string]model.Category `koanf:"role_categories" json:"role_categories"`

	// CategoryCompat[player][slot] is the base score for a non-preferred role.
	CategoryCompat map[model.Category]map[model.Category]float64 `koanf:"category_compat" json:"category_compat"`

	// AttributeWeights[slot category][attribute] weights the attribute vector.
	AttributeWeights map[model.Category]map[string]float64 `koanf:"attribute_weights" json:"attribute_weights"`

	FormMultipliers   map[model.Level]float64 `koanf:"form_multipliers" json:"form_multipliers"`
	MoraleMultipliers map[model.Level]float64 `koanf:"morale_multipliers" json:"morale_multipliers"`
}

// DefaultTables returns the stock coefficients.
func DefaultTables() Tables {
	return Tables{
		PreferredBase:      100,
		AttributeScale:     0.5,
		UnavailablePenalty: 0.3,
		RoleCategories: map[string]model.Category{
			"gk": model.Goalkeeper, "sk": model.Goalkeeper,
			"cb": model.Defender, "lcb": model.Defender, "rcb": model.Defender, "sw": model.Defender,
			"lb": model.Defender, "rb": model.Defender, "lwb": model.Defender, "rwb": model.Defender, "fb": model.Defender,
			"cdm": model.Midfielder, "dm": model.Midfielder, "cm": model.Midfielder, "lcm": model.Midfielder,
			"rcm": model.Midfielder, "b2b": model.Midfielder, "cam": model.Midfielder, "am": model.Midfielder,
			"lm": model.Midfielder, "rm": model.Midfielder,
			"st": model.Forward, "cf": model.Forward, "ss": model.Forward, "lw": model.Forward,
			"rw": model.Forward, "lf": model.Forward, "rf": model.Forward,
		},
		CategoryCompat: map[model.Category]map[model.Category]float64{
			model.Goalkeeper: {model.Goalkeeper: 80},
			model.Defender:   {model.Defender: 75, model.Midfielder: 40},
			model.Midfielder: {model.Midfielder: 75, model.Defender: 35, model.Forward: 40},
			model.Forward:    {model.Forward: 80, model.Midfielder: 35},
		},
		AttributeWeights: map[model.Category]map[string]float64{
			model.Goalkeeper: {
				model.AttrPositioning: 0.6, model.AttrSpeed: 0.1, model.AttrPassing: 0.1, model.AttrStamina: 0.2,
			},
			model.Defender: {
				model.AttrTackling: 0.4, model.AttrPositioning: 0.3, model.AttrSpeed: 0.2, model.AttrStamina: 0.1,
			},
			model.Midfielder: {
				model.AttrPassing: 0.35, model.AttrStamina: 0.25, model.AttrPositioning: 0.2, model.AttrDribbling: 0.2,
			},
			model.Forward: {
				model.AttrShooting: 0.45, model.AttrSpeed: 0.3, model.AttrDribbling: 0.25,
			},
		},
		FormMultipliers: map[model.Level]float64{
			model.Excellent: 1.15, model.Good: 1.05, model.Average: 1.0, model.Poor: 0.85, model.Terrible: 0.7,
		},
		MoraleMultipliers: map[model.Level]float64{
			model.Excellent: 1.1, model.Good: 1.05, model.Average: 1.0, model.Poor: 0.9, model.Terrible: 0.8,
		},
	}
}

// CategoryOf resolves a fine-grained role to its coarse category. A role
// spelled as a category name resolves to itself.
func (t Tables) CategoryOf(role string) (model.Category, bool) {
	if c, ok := t.RoleCategories[role]; ok {
		return c, true
	}
	for _, c := range model.Categories {
		if string(c) == role {
			return c, true
		}
	}
	return "", false
}
