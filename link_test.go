package mtcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink_InsertUnlinkOrder(t *testing.T) {
	var anchor link
	anchor.initAnchor()
	require.True(t, anchor.isEmpty())

	var a, b, c link
	anchor.insert(&a)
	anchor.insert(&b)
	anchor.insert(&c)

	// insert always splices immediately before the target, so repeated
	// inserts at the anchor append at the tail, producing FIFO order: a, b, c.
	got := []*link{}
	for n := anchor.next; n != &anchor; n = n.next {
		got = append(got, n)
	}
	assert.Equal(t, []*link{&a, &b, &c}, got)

	b.unlink()
	assert.False(t, b.isLinked())
	got = got[:0]
	for n := anchor.next; n != &anchor; n = n.next {
		got = append(got, n)
	}
	assert.Equal(t, []*link{&a, &c}, got)
}

func TestLink_UnlinkIdempotent(t *testing.T) {
	var l link
	require.NotPanics(t, func() { l.unlink() })
	require.NotPanics(t, func() { l.unlink() })
}

func TestSpliceAllInto(t *testing.T) {
	var src, dst link
	src.initAnchor()
	dst.initAnchor()

	var a, b link
	src.insert(&a)
	src.insert(&b)

	spliceAllInto(&dst, &src)
	assert.True(t, src.isEmpty())
	assert.False(t, dst.isEmpty())

	count := 0
	for n := dst.next; n != &dst; n = n.next {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestSpliceAllInto_EmptySource(t *testing.T) {
	var src, dst link
	src.initAnchor()
	dst.initAnchor()

	spliceAllInto(&dst, &src)
	assert.True(t, dst.isEmpty())
}

func TestFromLink_RecoversOwner(t *testing.T) {
	m := &Message{}
	recovered := fromLink[Message](&m.link)
	assert.Same(t, m, recovered)
}
