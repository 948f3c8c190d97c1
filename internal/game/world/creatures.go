// Package world holds the parts of the client-side world model the session core
// needs: creatures addressable by id and the local player.
package world

import "sort"

// CreatureID identifies a creature on the server. Zero means "no creature".
type CreatureID uint32

// Creature is a known creature.
type Creature struct {
	ID   CreatureID
	Name string
}

// Creatures resolves creature ids to the creatures currently known. Sessions hold
// ids rather than creatures, so a despawned target resolves to "not present".
// Creatures is owned by the session loop and is not safe for concurrent use.
type Creatures struct {
	byID map[CreatureID]*Creature
}

// NewCreatures creates an empty creature registry.
func NewCreatures() *Creatures {
	return &Creatures{byID: make(map[CreatureID]*Creature)}
}

// Put adds or replaces the creature with c.ID.
//
// Precondition: c must be non-nil with a nonzero ID.
func (w *Creatures) Put(c *Creature) {
	w.byID[c.ID] = c
}

// Remove forgets the creature with id. Unknown ids are ignored.
func (w *Creatures) Remove(id CreatureID) {
	delete(w.byID, id)
}

// Get returns the creature with id.
//
// Postcondition: Returns (creature, true) if known, or (nil, false); id 0 is never known.
func (w *Creatures) Get(id CreatureID) (*Creature, bool) {
	if id == 0 {
		return nil, false
	}
	c, ok := w.byID[id]
	return c, ok
}

// IDs returns every known id in ascending order.
func (w *Creatures) IDs() []CreatureID {
	out := make([]CreatureID, 0, len(w.byID))
	for id := range w.byID {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of known creatures.
func (w *Creatures) Len() int { return len(w.byID) }

// Clear forgets every creature.
func (w *Creatures) Clear() {
	w.byID = make(map[CreatureID]*Creature)
}
