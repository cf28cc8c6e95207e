package model

// Slot is a single position in a formation.
type Slot struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	PreferredRoles []string `json:"preferred_roles,omitempty"`
	Default        Position `json:"default"`
	// PlayerID is the assigned player; empty means the slot is open.
	PlayerID string `json:"player_id,omitempty"`
}

// Prefers reports whether role is one of the slot's preferred roles.
func (s Slot) Prefers(role string) bool {
	if role == "" {
		return false
	}
	for _, r := range s.PreferredRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Occupied reports whether a player is assigned.
func (s Slot) Occupied() bool { return s.PlayerID != "" }

// Formation is an ordered set of slots plus metadata.
type Formation struct {
	Name   string `json:"name"`
	System string `json:"system,omitempty"`
	Slots  []Slot `json:"slots"`
}

// Clone returns a deep copy of f.
func (f Formation) Clone() Formation {
	out := f
	out.Slots = make([]Slot, len(f.Slots))
	for i, s := range f.Slots {
		s.PreferredRoles = append([]string(nil), s.PreferredRoles...)
		out.Slots[i] = s
	}
	return out
}

// Cleared returns a deep copy of f with every assignment removed.
func (f Formation) Cleared() Formation {
	out := f.Clone()
	for i := range out.Slots {
		out.Slots[i].PlayerID = ""
	}
	return out
}

// SlotByID returns the index of the slot with id, or -1.
func (f Formation) SlotByID(id string) int {
	if id == "" {
		return -1
	}
	for i := range f.Slots {
		if f.Slots[i].ID == id {
			return i
		}
	}
	return -1
}

// SlotOf returns the index of the slot holding playerID, or -1.
func (f Formation) SlotOf(playerID string) int {
	if playerID == "" {
		return -1
	}
	for i := range f.Slots {
		if f.Slots[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// Assigned counts occupied slots.
func (f Formation) Assigned() int {
	n := 0
	for _, s := range f.Slots {
		if s.Occupied() {
			n++
		}
	}
	return n
}
