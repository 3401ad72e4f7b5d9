package slides

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/clip-saver"
)

func descriptors(urls ...string) []clip_saver.Descriptor {
	var result []clip_saver.Descriptor
	for i, u := range urls {
		result = append(result, clip_saver.Descriptor{URL: u, Filename: string(rune('a' + i))})
	}
	return result
}

func assertBound(assert *assert_.Assertions, s *SlideShow) {
	current, ok := s.Current()
	if assert.True(ok) {
		assert.Equal(s.Slides()[s.Index()], current)
	}
}

func TestSlideShow_Wrap(t *testing.T) {
	assert := assert_.New(t)
	s := New(descriptors("u1", "u2", "u3"))
	assert.Equal(0, s.Index())
	assert.Equal("1 / 3", s.Counter())
	assertBound(assert, s)

	s.Retreat()
	assert.Equal(2, s.Index())
	assert.Equal("3 / 3", s.Counter())
	assertBound(assert, s)

	s.Advance()
	assert.Equal(0, s.Index())
	assertBound(assert, s)

	s.Advance()
	s.Advance()
	s.Advance()
	assert.Equal(0, s.Index())

	s.Move(-4)
	assert.Equal(2, s.Index())
	assertBound(assert, s)
}

func TestSlideShow_Load(t *testing.T) {
	assert := assert_.New(t)
	s := New(descriptors("u1", "u2", "u3"))
	s.Advance()
	s.Advance()

	s.Load(descriptors("v1", "v2"))
	assert.Equal(0, s.Index())
	assert.Equal(2, s.Len())
	assert.Equal(descriptors("v1", "v2"), s.Slides())
	current, ok := s.Current()
	assert.True(ok)
	assert.Equal("v1", current.URL)
}

func TestSlideShow_Empty(t *testing.T) {
	assert := assert_.New(t)
	var s SlideShow
	s.Advance()
	s.Retreat()
	assert.Equal(0, s.Index())
	assert.Equal(0, s.Len())
	assert.Equal("0 / 0", s.Counter())
	_, ok := s.Current()
	assert.False(ok)

	s.Load(descriptors("u1"))
	s.Load(nil)
	_, ok = s.Current()
	assert.False(ok)
}

func TestSlideShow_SingleSlide(t *testing.T) {
	assert := assert_.New(t)
	s := New(descriptors("u1"))
	s.Advance()
	assert.Equal(0, s.Index())
	s.Retreat()
	assert.Equal(0, s.Index())
	assertBound(assert, s)
}

func TestSlideShow_LoadCopies(t *testing.T) {
	assert := assert_.New(t)
	input := descriptors("u1", "u2")
	s := New(input)
	input[0].URL = "changed"
	assert.Equal("u1", s.Slides()[0].URL)
}
