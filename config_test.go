package clip_saver

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestFilenameConfig(t *testing.T) {
	assert := assert_.New(t)
	names := NewFilenameConfig()

	video, err := names.VideoFilename("abc")
	assert.NoError(err)
	assert.Equal("abc_video.mp4", video)

	audio, err := names.AudioFilename("abc")
	assert.NoError(err)
	assert.Equal("abc_audio.mp3", audio)

	slide, err := names.SlideFilename("abc", 3)
	assert.NoError(err)
	assert.Equal("abc_slide_3.jpg", slide)

	// Missing username falls back to the placeholder
	video, err = names.VideoFilename("")
	assert.NoError(err)
	assert.Equal("tiktok_user_video.mp4", video)
}

func TestSlideFilenames(t *testing.T) {
	assert := assert_.New(t)
	names := NewFilenameConfig()
	filenames, err := names.SlideFilenames("abc", 3)
	assert.NoError(err)
	assert.Equal([]string{"abc_slide_1.jpg", "abc_slide_2.jpg", "abc_slide_3.jpg"}, filenames)

	filenames, err = names.SlideFilenames("", 1)
	assert.NoError(err)
	assert.Equal([]string{"tiktok_user_slide_1.jpg"}, filenames)

	filenames, err = names.SlideFilenames("abc", 0)
	assert.NoError(err)
	assert.Empty(filenames)
}

func TestParseFilenameTemplate(t *testing.T) {
	assert := assert_.New(t)

	tmpl, err := ParseFilenameTemplate("slide", "{{.Index}}-{{.Username}}.jpeg")
	assert.NoError(err)
	names := NewFilenameConfig()
	names.SlideTemplate = tmpl
	slide, err := names.SlideFilename("abc", 1)
	assert.NoError(err)
	assert.Equal("1-abc.jpeg", slide)

	_, err = ParseFilenameTemplate("broken", "{{.Username")
	assert.Error(err)

	tmpl, err = ParseFilenameTemplate("unknown", "{{.Nope}}")
	assert.NoError(err)
	names.VideoTemplate = tmpl
	_, err = names.VideoFilename("abc")
	assert.Error(err, "unknown fields should fail at execution")
}
