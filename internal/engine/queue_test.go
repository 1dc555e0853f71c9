package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pingpong-life/internal/core"
)

func TestEditQueueDrainsEachEditOnce(t *testing.T) {
	var q EditQueue
	q.Push(core.Edit{X: 1, Y: 2, Alive: true})
	q.Push(core.Edit{X: 3, Y: 4})
	assert.Equal(t, 2, q.Len())

	var got []core.Edit
	n := q.Drain(func(e core.Edit) { got = append(got, e) })
	assert.Equal(t, 2, n)
	assert.Equal(t, []core.Edit{{X: 1, Y: 2, Alive: true}, {X: 3, Y: 4}}, got)
	assert.Zero(t, q.Len())

	n = q.Drain(func(core.Edit) { t.Fatal("queue must be empty") })
	assert.Zero(t, n)
}
