package term

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/generic"
	"github.com/alanbriolat/clip-saver/internal/batch"
	"github.com/alanbriolat/clip-saver/internal/pubsub"
	"github.com/alanbriolat/clip-saver/internal/saver"
	"github.com/alanbriolat/clip-saver/internal/session"
)

func TestButton(t *testing.T) {
	assert := assert_.New(t)
	var out bytes.Buffer
	b := NewButton(&out, "Download Video")
	assert.Equal("[Download Video]", b.String())
	assert.Equal(1.0, b.Opacity())
	assert.True(b.Enabled())

	b.SetEnabled(false)
	b.SetLabel(saver.BusyLabel)
	b.SetLabel(saver.BusyLabel)
	assert.Equal("[Downloading... (Please Wait)] (busy)\n", out.String())
	b.SetEnabled(true)
	b.SetLabel("Download Video")
	assert.Equal("[Downloading... (Please Wait)] (busy)\n[Download Video]\n", out.String())
}

func TestNotifierAndOpener(t *testing.T) {
	assert := assert_.New(t)
	var out bytes.Buffer
	Notifier{Out: &out}.Notify(saver.FallbackNotice)
	assert.NoError(Opener(&out, false).Open("https://cdn/x.mp4"))
	assert.Equal("! "+saver.FallbackNotice+"\nOpen this link to save it manually: https://cdn/x.mp4\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestPrintOpener_Error(t *testing.T) {
	assert_.Error(t, PrintOpener{Out: failingWriter{}}.Open("x"))
}

func TestByteProgress(t *testing.T) {
	assert := assert_.New(t)
	var out bytes.Buffer
	p := NewByteProgress(&out)
	a := clip_saver.Descriptor{URL: "u1", Filename: "a.mp4"}
	b := clip_saver.Descriptor{URL: "u2", Filename: "b.mp4"}
	p.Update(a, 5, 10)
	p.Update(a, 10, 10)
	p.Update(b, 3, -1)
	p.Update(b, 7, -1)
	p.Finish()
	p.Finish()
	assert.Contains(out.String(), "a.mp4")
	assert.Contains(out.String(), "b.mp4")
}

func TestWatchBatch(t *testing.T) {
	assert := assert_.New(t)
	var out bytes.Buffer
	events := pubsub.NewChannel[batch.Event](10)
	done := WatchBatch(SyncWriter(&out), events)
	d := clip_saver.Descriptor{URL: "u1", Filename: "a.jpg"}
	events.Send(batch.ItemStarted{Index: 0, Total: 1, Descriptor: d})
	events.Send(batch.ItemFinished{Index: 0, Total: 1, Attempt: &saver.Attempt{Descriptor: d, Status: saver.StatusSuccess}})
	events.Send(batch.BatchFinished{Summary: batch.Summary{Total: 1, Succeeded: 1}})
	events.Close()
	<-done
	assert.Contains(out.String(), "photos")
}

func TestStartLoading(t *testing.T) {
	var out bytes.Buffer
	stop := StartLoading(SyncWriter(&out), "loading")
	stop()
	stop()
}

func TestPrintMedia(t *testing.T) {
	assert := assert_.New(t)
	var out bytes.Buffer
	PrintMedia(&out, clip_saver.MediaSet{
		Type:        clip_saver.MediaTypeVideo,
		Username:    "abc",
		Views:       "100",
		Video:       clip_saver.Descriptor{URL: "https://cdn/x.mp4"},
		Watermarked: true,
	}, session.State{})
	assert.Equal(strings.Join([]string{
		"@abc  views: 100  likes: -",
		"video: https://cdn/x.mp4",
		WatermarkNote,
		"audio: none",
		"",
	}, "\n"), out.String())

	out.Reset()
	PrintMedia(&out, clip_saver.MediaSet{
		Type:     clip_saver.MediaTypeVideo,
		Username: "abc",
		Video:    clip_saver.Descriptor{URL: "https://cdn/x.mp4"},
		Audio:    generic.Some(clip_saver.Descriptor{URL: "https://cdn/x.mp3"}),
	}, session.State{})
	assert.Contains(out.String(), "audio: https://cdn/x.mp3\n")

	out.Reset()
	PrintMedia(&out, clip_saver.MediaSet{
		Type:     clip_saver.MediaTypePhoto,
		Username: "abc",
		Slides:   []clip_saver.Descriptor{{URL: "u1"}, {URL: "u2"}},
	}, session.State{SlideIndex: 1, SlideCount: 2, BoundSlide: "u2"})
	assert.Equal(strings.Join([]string{
		"@abc  views: -  likes: -",
		"photos: 2",
		"  1. u1",
		"> 2. u2",
		"slide 2 / 2: u2",
		"",
	}, "\n"), out.String())
}
