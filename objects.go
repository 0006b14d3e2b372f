package glref

import (
	"fmt"
	"maps"
	"slices"
)

// object is the name and reference count shared by every GL object.
//
// The manager holds one reference while the name is live. Bindings and
// attachments each hold another, so deleting a name that is still attached
// somewhere keeps the storage alive until the last holder lets go.
type object struct {
	name uint32
	refs int
}

func (o *object) base() *object { return o }

// Name returns the GL name the object was created with.
func (o *object) Name() uint32 { return o.name }

// managed is implemented by every object kept in an objectManager.
type managed interface {
	base() *object
	// free releases the object's storage once the last reference is gone.
	free()
}

// objectManager maps GL names to objects of one kind.
type objectManager[T managed] struct {
	kind    string
	objects map[uint32]T
	next    uint32
}

func newObjectManager[T managed](kind string) *objectManager[T] {
	return &objectManager[T]{kind: kind, objects: make(map[uint32]T), next: 1}
}

// allocName returns an unused non-zero name.
func (m *objectManager[T]) allocName() uint32 {
	for {
		name := m.next
		m.next++
		if m.next == 0 {
			m.next = 1
		}
		if _, used := m.objects[name]; !used && name != 0 {
			return name
		}
	}
}

// insert registers a new object under its name. The manager takes the
// initial reference.
func (m *objectManager[T]) insert(obj T) {
	b := obj.base()
	if b.name == 0 {
		panic(fmt.Sprintf("glref: %s with name 0", m.kind))
	}
	if _, dup := m.objects[b.name]; dup {
		panic(fmt.Sprintf("glref: %s %d already exists", m.kind, b.name))
	}
	b.refs = 1
	m.objects[b.name] = obj
}

// find returns the live object with the given name.
func (m *objectManager[T]) find(name uint32) (T, bool) {
	obj, ok := m.objects[name]
	return obj, ok
}

// acquire adds a reference for a binding or attachment.
func (m *objectManager[T]) acquire(obj T) {
	b := obj.base()
	if b.refs <= 0 {
		panic(fmt.Sprintf("glref: acquire of released %s %d", m.kind, b.name))
	}
	b.refs++
}

// release drops a reference and frees the object when none remain.
func (m *objectManager[T]) release(obj T) {
	b := obj.base()
	if b.refs <= 0 {
		panic(fmt.Sprintf("glref: release of unreferenced %s %d", m.kind, b.name))
	}
	b.refs--
	if b.refs == 0 {
		obj.free()
	}
}

// remove deletes the name and drops the manager's reference. The object
// stays usable through the references other holders still own.
func (m *objectManager[T]) remove(name uint32) {
	obj, ok := m.objects[name]
	if !ok {
		panic(fmt.Sprintf("glref: remove of unknown %s %d", m.kind, name))
	}
	delete(m.objects, name)
	m.release(obj)
}

// names returns every live name in ascending order.
func (m *objectManager[T]) names() []uint32 {
	return slices.Sorted(maps.Keys(m.objects))
}

// removeAll deletes every live name.
func (m *objectManager[T]) removeAll() {
	for _, name := range m.names() {
		m.remove(name)
	}
}

// rebind moves a binding slot from its current object to obj, adjusting
// reference counts. A zero T clears the slot.
func rebind[T interface {
	comparable
	managed
}](m *objectManager[T], slot *T, obj T) {
	var zero T
	cur := *slot
	if cur == obj {
		return
	}
	if obj != zero {
		m.acquire(obj)
	}
	*slot = obj
	if cur != zero {
		m.release(cur)
	}
}
