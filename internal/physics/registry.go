package physics

// Registry owns the live bodies. Bodies are stored densely; ids are
// assigned on Add and never reused.
type Registry struct {
	bodies []Body
	nextID BodyID
}

func NewRegistry() *Registry {
	return &Registry{
		bodies: make([]Body, 0, 32),
		nextID: 1,
	}
}

// Add validates b, assigns it a fresh id and stores it. Any id already on
// b is overwritten.
func (r *Registry) Add(b Body) (BodyID, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	b.ID = r.nextID
	r.nextID++
	r.bodies = append(r.bodies, b)
	return b.ID, nil
}

func (r *Registry) Remove(id BodyID) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.bodies = append(r.bodies[:i], r.bodies[i+1:]...)
	return true
}

func (r *Registry) Get(id BodyID) (Body, bool) {
	i := r.index(id)
	if i < 0 {
		return Body{}, false
	}
	return r.bodies[i], true
}

// Clear drops every body. Ids keep counting from where they were.
func (r *Registry) Clear() {
	clear(r.bodies)
	r.bodies = r.bodies[:0]
}

func (r *Registry) Len() int { return len(r.bodies) }

// Bodies returns the backing slice. Callers may mutate elements in place
// for the duration of one pass but must not retain or append to it.
func (r *Registry) Bodies() []Body { return r.bodies }

// Snapshot returns a copy of all bodies in insertion order.
func (r *Registry) Snapshot() []Body {
	out := make([]Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}

func (r *Registry) index(id BodyID) int {
	for i := range r.bodies {
		if r.bodies[i].ID == id {
			return i
		}
	}
	return -1
}
