package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    string
	value int
}

func (i *item) ID() string { return i.id }

func TestManagerGetReturnsFirstMatch(t *testing.T) {
	m := NewManager[string, *item]()
	first := &item{id: "cube", value: 1}
	m.Add(first)
	m.Add(&item{id: "cube", value: 2})
	m.Add(&item{id: "table", value: 3})

	got, ok := m.Get("cube")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 3, m.Len())
}

func TestManagerGetAbsentKey(t *testing.T) {
	m := NewManager[string, *item]()
	m.Add(&item{id: "cube"})

	got, ok := m.Get("sphere")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestManagerAllKeepsInsertionOrder(t *testing.T) {
	m := NewManager[string, *item]()
	for _, id := range []string{"c", "a", "b"} {
		m.Add(&item{id: id})
	}
	var ids []string
	for it := range m.All() {
		ids = append(ids, it.ID())
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry[string, *item]()
	second := &item{id: "second"}
	r.Add("node", &item{id: "first"})
	r.Add("node", second)

	got, ok := r.Get("node")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryMissing(t *testing.T) {
	var r Registry[string, *item]
	got, ok := r.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, got)

	r.Add("x", &item{id: "x"})
	r.Remove("x")
	_, ok = r.Get("x")
	assert.False(t, ok)
}

func TestRingQueue(t *testing.T) {
	rq := NewRingQueue[int](3)
	assert.True(t, rq.IsEmpty())

	_, err := rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))
	assert.ErrorIs(t, rq.Enqueue(4), ErrQueueFull)

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, rq.Enqueue(4))

	var got []int
	for v := range rq.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 4}, got)

	front, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2, front)
	assert.Equal(t, 3, rq.Len())
}
