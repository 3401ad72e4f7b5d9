package tiktok

import (
	"context"
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/api"
)

type stubBackend struct {
	links    []string
	response *api.Response
	err      error
}

func (b *stubBackend) Fetch(ctx context.Context, link string) (*api.Response, error) {
	b.links = append(b.links, link)
	return b.response, b.err
}

func TestNormalize(t *testing.T) {
	assert := assert_.New(t)

	valid := map[string]string{
		"https://www.tiktok.com/@abc/video/7234567890123456789":         "https://www.tiktok.com/@abc/video/7234567890123456789",
		"https://www.tiktok.com/@abc/photo/7234567890123456789?lang=en": "https://www.tiktok.com/@abc/photo/7234567890123456789?lang=en",
		"www.tiktok.com/@a.b_c/video/1/":                                "https://www.tiktok.com/@a.b_c/video/1/",
		"  tiktok.com/@abc/video/1  ":                                   "https://tiktok.com/@abc/video/1",
		"https://vm.tiktok.com/ZMabc123/":                               "https://vm.tiktok.com/ZMabc123/",
		"vt.tiktok.com/ZS8xyz":                                          "https://vt.tiktok.com/ZS8xyz",
		"https://m.tiktok.com/v/7234567890.html":                        "https://m.tiktok.com/v/7234567890.html",
		"https://WWW.TikTok.com/@abc/video/1#comments":                  "https://WWW.TikTok.com/@abc/video/1",
	}
	for input, expected := range valid {
		link, err := Normalize(input)
		assert.NoError(err, input)
		assert.Equal(expected, link, input)
	}

	for _, input := range []string{
		"",
		"ftp://www.tiktok.com/@abc/video/1",
		"https://www.youtube.com/watch?v=abc",
		"https://www.tiktok.com/@abc",
		"https://www.tiktok.com/@abc/video/notanumber",
		"https://vm.tiktok.com/",
		"https://vm.tiktok.com/a/b",
		"https://tiktok.com.evil.example/@abc/video/1",
	} {
		_, err := Normalize(input)
		assert.Error(err, input)
	}
}

func TestRecon(t *testing.T) {
	assert := assert_.New(t)
	backend := &stubBackend{response: &api.Response{
		Type:      "video",
		Username:  "abc",
		Downloads: api.Downloads{NoWatermark: []string{"https://cdn/x.mp4"}},
		MP3:       []string{"https://cdn/x.mp3"},
	}}
	registry := clip_saver.ProviderRegistry{}
	registry.MustAdd(New(backend).Provider())

	m, err := registry.Match("tiktok.com/@abc/video/1")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(ProviderName, m.ProviderName)
	assert.Equal("https://tiktok.com/@abc/video/1", m.Source.URL())

	media, err := m.Source.Recon(context.Background(), clip_saver.NewFilenameConfig())
	assert.NoError(err)
	assert.Equal([]string{"https://tiktok.com/@abc/video/1"}, backend.links)
	assert.Equal("abc_video.mp4", media.Video.Filename)
	audio, ok := media.Audio.Get()
	assert.True(ok)
	assert.Equal("abc_audio.mp3", audio.Filename)
}

func TestRecon_BackendError(t *testing.T) {
	assert := assert_.New(t)
	backend := &stubBackend{err: &api.BackendError{Message: "Video not found"}}
	source, err := New(backend).Match("https://vm.tiktok.com/ZMabc/")
	if !assert.NoError(err) {
		return
	}
	_, err = source.Recon(context.Background(), clip_saver.NewFilenameConfig())
	assert.ErrorIs(err, api.ErrBackend)
	assert.EqualError(err, "Video not found")
}
