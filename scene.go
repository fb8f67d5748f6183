package canvas

// Scene holds the entities of one canvas, the visible subset of the last
// frame and the selection and hover slots.
//
// The entity slice is the host's ordered collection; the scene only keeps
// an ID index next to it. Selected and hovered always point at entities
// currently in the scene, or are nil.
type Scene struct {
	entities []*Entity
	byID     map[string]*Entity

	visible []*Entity

	selected *Entity
	hovered  *Entity

	// Selection hooks, installed by the director. onDeselect runs before the
	// previous entity's state is reset; onSelect after the new one is marked.
	onDeselect func(*Entity)
	onSelect   func(*Entity)
}

// NewScene creates a scene over the given entities. The slice is adopted,
// not copied. Panics on a nil entity.
func NewScene(entities []*Entity) *Scene {
	s := &Scene{
		entities: entities,
		byID:     make(map[string]*Entity, len(entities)),
		visible:  make([]*Entity, 0, len(entities)),
	}
	for _, e := range entities {
		if e == nil {
			panic("canvas: nil entity in scene")
		}
		s.byID[e.ID] = e
	}
	return s
}

// Entities returns every entity in insertion order. The returned slice MUST
// NOT be mutated.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

// Visible returns the entities that passed culling on the last
// UpdateVisible, sorted ascending by ZIndex. The returned slice MUST NOT be
// mutated and is only valid until the next UpdateVisible.
func (s *Scene) Visible() []*Entity {
	return s.visible
}

// Entity returns the entity with the given ID, or nil.
func (s *Scene) Entity(id string) *Entity {
	return s.byID[id]
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Add appends an entity. Adding an ID already present replaces the index
// entry but keeps both in the ordered slice, so callers should not do it.
func (s *Scene) Add(e *Entity) {
	if e == nil {
		panic("canvas: cannot add nil entity")
	}
	s.entities = append(s.entities, e)
	s.byID[e.ID] = e
}

// Remove takes the entity with the given ID out of the scene. A selected
// entity is deselected first (the deselect hook fires) and a hovered one is
// unhovered. Returns the removed entity, or nil if the ID is unknown.
func (s *Scene) Remove(id string) *Entity {
	e := s.byID[id]
	if e == nil {
		return nil
	}
	if s.selected == e {
		s.Select(nil)
	}
	if s.hovered == e {
		s.SetHovered(nil)
	}
	for i, c := range s.entities {
		if c == e {
			copy(s.entities[i:], s.entities[i+1:])
			s.entities[len(s.entities)-1] = nil
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
	for i, c := range s.visible {
		if c == e {
			s.visible = append(s.visible[:i], s.visible[i+1:]...)
			break
		}
	}
	delete(s.byID, id)
	return e
}

// --- Culling ---

// UpdateVisible recomputes the visible list against vp. An entity is
// visible when its position lies within the screen half-extent plus
// VisibilityBuffer of the camera centre, on both axes. Only the position is
// tested, not the box.
func (s *Scene) UpdateVisible(vp *Viewport) {
	halfW := vp.Width / vp.Zoom / 2
	halfH := vp.Height / vp.Zoom / 2
	minX := vp.Position.X - halfW - VisibilityBuffer
	maxX := vp.Position.X + halfW + VisibilityBuffer
	minY := vp.Position.Y - halfH - VisibilityBuffer
	maxY := vp.Position.Y + halfH + VisibilityBuffer

	s.visible = s.visible[:0]
	for _, e := range s.entities {
		p := e.Position
		if p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY {
			s.visible = append(s.visible, e)
		}
	}
	sortByZ(s.visible)
}

// sortByZ is a stable insertion sort by ascending ZIndex. The visible list
// is nearly sorted between frames, which keeps this close to linear.
func sortByZ(es []*Entity) {
	for i := 1; i < len(es); i++ {
		key := es[i]
		j := i - 1
		for j >= 0 && es[j].ZIndex > key.ZIndex {
			es[j+1] = es[j]
			j--
		}
		es[j+1] = key
	}
}

// --- Hit testing ---

// FindEntityAt returns the front-most visible entity whose box contains the
// world point, or nil.
func (s *Scene) FindEntityAt(x, y float64) *Entity {
	for i := len(s.visible) - 1; i >= 0; i-- {
		if e := s.visible[i]; e.Contains(x, y) {
			return e
		}
	}
	return nil
}

// FindFollowerAt searches the followers of the current selection, last to
// first, and returns the first containing the world point, or nil. Check it
// before FindEntityAt: a handle overlapping its owner wins.
func (s *Scene) FindFollowerAt(x, y float64) *Follower {
	if s.selected == nil || s.selected.Control == nil {
		return nil
	}
	fs := s.selected.Control.followers
	for i := len(fs) - 1; i >= 0; i-- {
		if fs[i].Contains(x, y) {
			return &fs[i]
		}
	}
	return nil
}

// --- Selection ---

// Selected returns the selected entity, or nil.
func (s *Scene) Selected() *Entity {
	return s.selected
}

// Hovered returns the hovered entity, or nil.
func (s *Scene) Hovered() *Entity {
	return s.hovered
}

// Select makes e the selected entity; nil clears the selection. The
// previous selection is always released first: the deselect hook fires,
// then its Selected flag, ZIndex and followers are reset. The new entity is
// then marked, moved to SelectedZIndex, and the select hook fires.
// Selecting the current selection again does nothing and returns false.
func (s *Scene) Select(e *Entity) bool {
	if e == s.selected {
		return false
	}
	if prev := s.selected; prev != nil {
		if s.onDeselect != nil {
			s.onDeselect(prev)
		}
		prev.State.Selected = false
		prev.ZIndex = 0
		prev.Control = nil
		s.selected = nil
	}
	if e == nil {
		return true
	}
	e.State.Selected = true
	e.ZIndex = SelectedZIndex
	s.selected = e
	if s.onSelect != nil {
		s.onSelect(e)
	}
	return true
}

// SetHovered moves the hover slot to e (nil clears it), keeping
// State.Hovered set on exactly that entity. Returns whether the slot
// changed.
func (s *Scene) SetHovered(e *Entity) bool {
	if e == s.hovered {
		return false
	}
	if s.hovered != nil {
		s.hovered.State.Hovered = false
	}
	s.hovered = e
	if e != nil {
		e.State.Hovered = true
	}
	return true
}
