package world

import "github.com/cory-johannsen/otsession/internal/protocol"

// LocalPlayer is the character this client controls. It tracks only what the
// session needs to gate and sequence walking; map walkability lives elsewhere.
type LocalPlayer struct {
	ID   CreatureID
	Name string

	preWalking  bool
	preWalkDir  protocol.Direction
	autoWalking bool
	inventory   map[int]protocol.Item
}

// NewLocalPlayer creates a player with no id yet; the server assigns it at login.
func NewLocalPlayer(name string) *LocalPlayer {
	return &LocalPlayer{Name: name, inventory: make(map[int]protocol.Item)}
}

// CanWalk reports whether a step towards dir may be attempted.
func (p *LocalPlayer) CanWalk(dir protocol.Direction) bool {
	return dir.Valid()
}

// PreWalk records a step taken locally ahead of server confirmation.
func (p *LocalPlayer) PreWalk(dir protocol.Direction) {
	p.preWalking = true
	p.preWalkDir = dir
}

// PreWalking returns the direction of the unconfirmed step, if any.
func (p *LocalPlayer) PreWalking() (protocol.Direction, bool) {
	return p.preWalkDir, p.preWalking
}

// StartAutoWalk marks the player as following a server-side path.
func (p *LocalPlayer) StartAutoWalk() { p.autoWalking = true }

// IsAutoWalking reports whether an auto-walk path is in progress.
func (p *LocalPlayer) IsAutoWalking() bool { return p.autoWalking }

// StopWalk abandons any locomotion in progress.
func (p *LocalPlayer) StopWalk() {
	p.preWalking = false
	p.autoWalking = false
}

// CancelWalk undoes a step the server refused and turns the player towards dir.
func (p *LocalPlayer) CancelWalk(dir protocol.Direction) {
	p.StopWalk()
	if dir.Valid() {
		p.preWalkDir = dir
	}
}

// SetInventoryItem stores item in slot, or clears the slot when item is nil.
func (p *LocalPlayer) SetInventoryItem(slot int, item *protocol.Item) {
	if item == nil {
		delete(p.inventory, slot)
		return
	}
	p.inventory[slot] = *item
}

// InventoryItem returns the item equipped in slot.
func (p *LocalPlayer) InventoryItem(slot int) (protocol.Item, bool) {
	it, ok := p.inventory[slot]
	return it, ok
}
