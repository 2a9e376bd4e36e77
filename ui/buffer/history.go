package buffer

// An edit is one change to a buffer: removed was deleted and inserted was put in
// its place, both at pos.
type edit struct {
	pos      int
	removed  []byte
	inserted []byte
}

// A History keeps the edits of a buffer so they can be undone and redone. It only
// lives in memory and is forgotten when a file is opened or a new one is started.
type History struct {
	undo []edit
	redo []edit
}

// Record stores an edit that was already applied. Recording drops anything that
// could have been redone.
func (h *History) Record(pos int, removed, inserted []byte) {
	if len(removed) == 0 && len(inserted) == 0 {
		return
	}
	h.undo = append(h.undo, edit{pos, clone(removed), clone(inserted)})
	h.redo = h.redo[:0]
}

// Undo reverts the last edit on b. It returns the position just after the
// restored text, and false if there was nothing to undo.
func (h *History) Undo(b Buffer) (int, bool) {
	if !h.CanUndo() {
		return 0, false
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	b.RemoveRange(e.pos, e.pos+len(e.inserted))
	b.InsertAt(e.pos, e.removed)
	h.redo = append(h.redo, e)
	return e.pos + len(e.removed), true
}

// Redo applies the last undone edit to b again.
func (h *History) Redo(b Buffer) (int, bool) {
	if !h.CanRedo() {
		return 0, false
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	b.RemoveRange(e.pos, e.pos+len(e.removed))
	b.InsertAt(e.pos, e.inserted)
	h.undo = append(h.undo, e)
	return e.pos + len(e.inserted), true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) Reset() {
	h.undo, h.redo = nil, nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
