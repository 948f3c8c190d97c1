// Package container tracks the containers (backpacks, chests, corpses) the server
// has opened for the local player.
package container

import (
	"errors"

	"github.com/cory-johannsen/otsession/internal/protocol"
)

var (
	// ErrNotFound means no container occupies the referenced id.
	ErrNotFound = errors.New("container not found")
	// ErrSlotNotFound means the referenced slot is outside the container's items.
	ErrSlotNotFound = errors.New("slot not found")
)

// Container is one open container window.
type Container struct {
	id        int
	capacity  int
	name      string
	item      protocol.Item
	hasParent bool
	items     []protocol.Item
	closed    bool
}

// New creates an open, empty container.
func New(id, capacity int, name string, item protocol.Item, hasParent bool) *Container {
	return &Container{id: id, capacity: capacity, name: name, item: item, hasParent: hasParent}
}

func (c *Container) ID() int                      { return c.id }
func (c *Container) Capacity() int                { return c.capacity }
func (c *Container) Name() string                 { return c.name }
func (c *Container) ContainerItem() protocol.Item { return c.item }
func (c *Container) HasParent() bool              { return c.hasParent }
func (c *Container) Closed() bool                 { return c.closed }
func (c *Container) Len() int                     { return len(c.items) }

// Items returns a copy of the contained items in slot order.
func (c *Container) Items() []protocol.Item {
	out := make([]protocol.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the item in slot.
//
// Postcondition: Returns (item, true) for a valid slot, or (zero, false).
func (c *Container) Item(slot int) (protocol.Item, bool) {
	if slot < 0 || slot >= len(c.items) {
		return protocol.Item{}, false
	}
	return c.items[slot], true
}

func (c *Container) appendItems(items []protocol.Item) {
	c.items = append(c.items, items...)
	c.updatePositions()
}

// addItem places item in slot 0, shifting every other item one slot down.
func (c *Container) addItem(item protocol.Item) {
	c.items = append([]protocol.Item{item}, c.items...)
	c.updatePositions()
}

func (c *Container) updateItem(slot int, item protocol.Item) (protocol.Item, error) {
	if slot < 0 || slot >= len(c.items) {
		return protocol.Item{}, ErrSlotNotFound
	}
	old := c.items[slot]
	item.Position = protocol.ContainerSlotPosition(c.id, slot)
	c.items[slot] = item
	return old, nil
}

func (c *Container) removeItem(slot int) (protocol.Item, error) {
	if slot < 0 || slot >= len(c.items) {
		return protocol.Item{}, ErrSlotNotFound
	}
	removed := c.items[slot]
	c.items = append(c.items[:slot], c.items[slot+1:]...)
	c.updatePositions()
	return removed, nil
}

func (c *Container) updatePositions() {
	for i := range c.items {
		c.items[i].Position = protocol.ContainerSlotPosition(c.id, i)
	}
}
