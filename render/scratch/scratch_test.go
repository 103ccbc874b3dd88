package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendAndReset(t *testing.T) {
	b := New(4)
	b.Append([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, b.Bytes())

	c := b.Cap()
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, c, b.Cap(), "reset must not free")
}

func TestAlignTo(t *testing.T) {
	b := New(16)
	b.Append([]byte{1, 2, 3, 4, 5, 6})
	b.AlignTo(4)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 0, 0}, b.Bytes())

	// already aligned: no change
	b.AlignTo(4)
	assert.Equal(t, 8, b.Len())
}

func TestGrowKeepsContents(t *testing.T) {
	b := New(2)
	b.Append([]byte{9, 8})
	b.GrowTo(64)
	assert.GreaterOrEqual(t, b.Cap(), 64)
	assert.Equal(t, []byte{9, 8}, b.Bytes())
}
