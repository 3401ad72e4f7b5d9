package term

import (
	"fmt"
	"io"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/internal/session"
)

const WatermarkNote = "note: no watermark-free copy available, using watermarked video"

// PrintMedia writes the result panel for a loaded post.
func PrintMedia(out io.Writer, media clip_saver.MediaSet, state session.State) {
	p := printer{out: out}
	p.printf("@%s  views: %s  likes: %s\n", media.Username, orDash(media.Views), orDash(media.Likes))
	switch media.Type {
	case clip_saver.MediaTypeVideo:
		p.printf("video: %s\n", media.Video.URL)
		if media.Watermarked {
			p.printf("%s\n", WatermarkNote)
		}
		if audio, ok := media.Audio.Get(); ok {
			p.printf("audio: %s\n", audio.URL)
		} else {
			p.printf("audio: none\n")
		}
	case clip_saver.MediaTypePhoto:
		p.printf("photos: %d\n", len(media.Slides))
		for i, slide := range media.Slides {
			marker := " "
			if i == state.SlideIndex {
				marker = ">"
			}
			p.printf("%s %d. %s\n", marker, i+1, slide.URL)
		}
		PrintSlide(out, state)
	}
}

// PrintSlide writes the slide counter and the slide a single download would save.
func PrintSlide(out io.Writer, state session.State) {
	_, _ = fmt.Fprintf(out, "slide %s: %s\n", state.Counter(), state.BoundSlide)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type printer struct {
	out io.Writer
}

func (p printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
