package generic

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	assert := assert_.New(t)

	s := NewSet[string]()
	assert.False(s.Contains("mp4"))
	assert.True(s.Add("mp4"))
	assert.False(s.Add("mp4"))
	assert.True(s.Contains("mp4"))
	assert.True(s.Contains(), "empty Contains is vacuously true")

	s2 := NewSet("jpg", "png", "webp", "jpg")
	assert.True(s2.Contains("jpg", "webp"))
	assert.False(s2.Contains("jpg", "gif"))
	assert.False(s2.Contains("mp4"))
}

func TestOption(t *testing.T) {
	assert := assert_.New(t)

	none := None[int]()
	assert.True(none.IsNone())
	assert.False(none.IsSome())
	_, ok := none.Get()
	assert.False(ok)

	var zero Option[string]
	assert.True(zero.IsNone())

	some := Some(3)
	assert.True(some.IsSome())
	v, ok := some.Get()
	assert.True(ok)
	assert.Equal(3, v)
}

func TestResult(t *testing.T) {
	assert := assert_.New(t)

	ok := NewResult(1, nil)
	assert.False(ok.IsErr())
	assert.Equal(1, ok.Unwrap())

	bad := NewResult(0, assert_.AnError)
	assert.True(bad.IsErr())
	assert.Panics(func() { bad.Unwrap() })
	assert.ErrorIs(bad.Error, assert_.AnError)
	assert.Equal(2, Unwrap(2, nil))
	assert.Panics(func() { Unwrap_(assert_.AnError) })
	assert.NotPanics(func() { Unwrap_(nil) })
}
