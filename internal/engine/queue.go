package engine

import "pingpong-life/internal/core"

// EditQueue collects single-cell edits between frames. It is only touched
// from the frame-loop goroutine.
type EditQueue struct {
	edits []core.Edit
}

// Push appends an edit.
func (q *EditQueue) Push(e core.Edit) {
	q.edits = append(q.edits, e)
}

// Len reports the number of pending edits.
func (q *EditQueue) Len() int { return len(q.edits) }

// Drain hands every pending edit to fn in insertion order and empties the
// queue. It returns the number of edits drained.
func (q *EditQueue) Drain(fn func(core.Edit)) int {
	n := len(q.edits)
	for _, e := range q.edits {
		fn(e)
	}
	q.edits = q.edits[:0]
	return n
}
