package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/generic"
)

var (
	ErrUnknownType = errors.New("unknown media type")
	ErrNoMedia     = errors.New("no media in response")
)

// Count is a statistic the backend may send as either a number or a preformatted string like "1.2M".
type Count string

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Count(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("count must be a number or string: %w", err)
	}
	*c = Count(n.String())
	return nil
}

type Downloads struct {
	NoWatermark []string `json:"nowm"`
	Watermark   []string `json:"wm"`
}

type Slide struct {
	URL string `json:"url"`
}

// Response is the backend's description of a post.
type Response struct {
	Error     string    `json:"error,omitempty"`
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Views     Count     `json:"views"`
	Likes     Count     `json:"likes"`
	Downloads Downloads `json:"downloads"`
	MP3       []string  `json:"mp3"`
	Slides    []Slide   `json:"slides"`
}

func first(urls []string) (string, bool) {
	for _, u := range urls {
		if u != "" {
			return u, true
		}
	}
	return "", false
}

// MediaSet converts the response into descriptors named according to names. The watermark-free video is preferred;
// the watermarked copy is only used if there isn't one, and MediaSet.Watermarked says so.
func (r *Response) MediaSet(names clip_saver.FilenameConfig) (*clip_saver.MediaSet, error) {
	username := r.Username
	if username == "" {
		username = clip_saver.DefaultUsername
	}
	m := &clip_saver.MediaSet{
		Type:     clip_saver.MediaType(r.Type),
		Username: username,
		Views:    string(r.Views),
		Likes:    string(r.Likes),
	}

	switch m.Type {
	case clip_saver.MediaTypeVideo:
		videoURL, ok := first(r.Downloads.NoWatermark)
		if !ok {
			if videoURL, ok = first(r.Downloads.Watermark); !ok {
				return nil, fmt.Errorf("%w: no video URL", ErrNoMedia)
			}
			m.Watermarked = true
		}
		filename, err := names.VideoFilename(username)
		if err != nil {
			return nil, err
		}
		m.Video = clip_saver.Descriptor{URL: videoURL, Filename: filename}

		if audioURL, ok := first(r.MP3); ok {
			filename, err := names.AudioFilename(username)
			if err != nil {
				return nil, err
			}
			m.Audio = generic.Some(clip_saver.Descriptor{URL: audioURL, Filename: filename})
		}

	case clip_saver.MediaTypePhoto:
		if len(r.Slides) == 0 {
			return nil, fmt.Errorf("%w: no slides", ErrNoMedia)
		}
		filenames, err := names.SlideFilenames(username, len(r.Slides))
		if err != nil {
			return nil, err
		}
		m.Slides = make([]clip_saver.Descriptor, len(r.Slides))
		for i, slide := range r.Slides {
			m.Slides[i] = clip_saver.Descriptor{URL: slide.URL, Filename: filenames[i]}
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, r.Type)
	}
	return m, nil
}
