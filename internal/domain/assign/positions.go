package assign

import "github.com/okian/lineup/internal/domain/model"

// UpdatePositions returns a copy of roster where every team player holding a
// slot in formation sits at that slot's default position.
func UpdatePositions(roster []model.Player, formation model.Formation, team string) []model.Player {
	out := make([]model.Player, len(roster))
	copy(out, roster)
	for i := range out {
		if team != "" && out[i].Team != team {
			continue
		}
		if j := formation.SlotOf(out[i].ID); j >= 0 {
			out[i].Position = formation.Slots[j].Default
		}
	}
	return out
}
