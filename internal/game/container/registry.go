package container

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/otsession/internal/protocol"
)

// AutoID asks Open to allocate the lowest free id.
const AutoID = -1

// Observer receives container lifecycle notifications in the order they happen.
type Observer interface {
	// ContainerOpened fires after c is registered. previous is the container c
	// replaced, or nil; it is still open at this point.
	ContainerOpened(c, previous *Container)
	ContainerClosed(c *Container)
	ContainerItemAdded(c *Container, slot int, item protocol.Item)
	ContainerItemUpdated(c *Container, slot int, item, old protocol.Item)
	ContainerItemRemoved(c *Container, slot int, item protocol.Item)
}

// Registry maps small integer ids to the open containers. At most one container
// occupies an id. Registry is not safe for concurrent use; it belongs to the
// session loop.
type Registry struct {
	containers map[int]*Container
	observer   Observer
}

// NewRegistry creates an empty Registry.
//
// Precondition: observer must be non-nil.
func NewRegistry(observer Observer) *Registry {
	return &Registry{
		containers: make(map[int]*Container),
		observer:   observer,
	}
}

// Open registers a new container at id (or the lowest free id for AutoID) holding
// initial. If another container occupies the id it is closed after the open
// notification for the new one.
//
// Precondition: id is AutoID or >= 0.
// Postcondition: Get(id) returns the new container; a replaced container is Closed.
func (r *Registry) Open(id int, item protocol.Item, name string, capacity int, hasParent bool, initial []protocol.Item) *Container {
	if id == AutoID {
		id = r.FreeID()
	}
	previous := r.containers[id]
	c := New(id, capacity, name, item, hasParent)
	r.containers[id] = c
	c.appendItems(initial)

	r.observer.ContainerOpened(c, previous)

	if previous != nil {
		r.closeContainer(previous)
	}
	return c
}

// Close closes the container at id.
//
// Postcondition: Returns ErrNotFound if id is free; otherwise the slot is free and
// the container is Closed.
func (r *Registry) Close(id int) error {
	c, ok := r.containers[id]
	if !ok {
		return fmt.Errorf("closing container %d: %w", id, ErrNotFound)
	}
	delete(r.containers, id)
	r.closeContainer(c)
	return nil
}

// AddItem inserts item at the front of the container at id.
func (r *Registry) AddItem(id int, item protocol.Item) error {
	c, ok := r.containers[id]
	if !ok {
		return fmt.Errorf("adding item to container %d: %w", id, ErrNotFound)
	}
	c.addItem(item)
	added, _ := c.Item(0)
	r.observer.ContainerItemAdded(c, 0, added)
	return nil
}

// UpdateItem replaces the item in slot of the container at id.
func (r *Registry) UpdateItem(id, slot int, item protocol.Item) error {
	c, ok := r.containers[id]
	if !ok {
		return fmt.Errorf("updating item in container %d: %w", id, ErrNotFound)
	}
	old, err := c.updateItem(slot, item)
	if err != nil {
		return fmt.Errorf("updating slot %d of container %d: %w", slot, id, err)
	}
	updated, _ := c.Item(slot)
	r.observer.ContainerItemUpdated(c, slot, updated, old)
	return nil
}

// RemoveItem removes the item in slot of the container at id.
func (r *Registry) RemoveItem(id, slot int) error {
	c, ok := r.containers[id]
	if !ok {
		return fmt.Errorf("removing item from container %d: %w", id, ErrNotFound)
	}
	removed, err := c.removeItem(slot)
	if err != nil {
		return fmt.Errorf("removing slot %d of container %d: %w", slot, id, err)
	}
	r.observer.ContainerItemRemoved(c, slot, removed)
	return nil
}

// Get returns the container at id.
func (r *Registry) Get(id int) (*Container, bool) {
	c, ok := r.containers[id]
	return c, ok
}

// FreeID returns the lowest id no container occupies.
func (r *Registry) FreeID() int {
	id := 0
	for {
		if _, taken := r.containers[id]; !taken {
			return id
		}
		id++
	}
}

// Containers returns the open containers ordered by id.
func (r *Registry) Containers() []*Container {
	out := make([]*Container, 0, len(r.containers))
	for _, c := range r.containers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Len returns the number of open containers.
func (r *Registry) Len() int { return len(r.containers) }

// CloseAll closes every container in id order and empties the registry.
func (r *Registry) CloseAll() {
	all := r.Containers()
	r.containers = make(map[int]*Container)
	for _, c := range all {
		r.closeContainer(c)
	}
}

func (r *Registry) closeContainer(c *Container) {
	c.closed = true
	r.observer.ContainerClosed(c)
}
