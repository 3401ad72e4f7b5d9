// Package raw handles links that point straight at a media file, which need no backend lookup.
package raw

import (
	"context"
	"fmt"
	"net/url"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/generic"
	"github.com/alanbriolat/clip-saver/util"
)

type Config struct {
	Protocols       generic.Set[string]
	VideoExtensions generic.Set[string]
	ImageExtensions generic.Set[string]
}

func NewConfig() Config {
	return Config{
		Protocols: generic.NewSet(
			"http",
			"https",
		),
		VideoExtensions: generic.NewSet(
			"m4v",
			"mov",
			"mp4",
			"webm",
		),
		ImageExtensions: generic.NewSet(
			"jpeg",
			"jpg",
			"png",
			"webp",
		),
	}
}

func (c *Config) Match(s string) (clip_saver.Source, error) {
	// Expect string to be a URL
	parsedURL, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	// Check that scheme/protocol is valid
	if !c.Protocols.Contains(parsedURL.Scheme) {
		return nil, fmt.Errorf("unknown URL scheme %v", parsedURL.Scheme)
	}
	// Attempt to extract filename and extension
	filename, err := util.FilenameFromURL(parsedURL)
	if err != nil {
		return nil, err
	}
	extension := util.Extension(filename)
	var mediaType clip_saver.MediaType
	switch {
	case extension == "":
		return nil, fmt.Errorf("no file extension found")
	case c.VideoExtensions.Contains(extension):
		mediaType = clip_saver.MediaTypeVideo
	case c.ImageExtensions.Contains(extension):
		mediaType = clip_saver.MediaTypePhoto
	default:
		return nil, fmt.Errorf("unknown file extension %v", extension)
	}
	return &source{
		url:       s,
		filename:  filename,
		mediaType: mediaType,
	}, nil
}

func (c Config) Provider() clip_saver.Provider {
	return clip_saver.Provider{
		Name:  "raw",
		Match: c.Match,
	}
}

type source struct {
	url       string
	filename  string
	mediaType clip_saver.MediaType
}

func (s *source) URL() string {
	return s.url
}

func (s *source) String() string {
	return s.URL()
}

// Recon describes the file without fetching anything. The file keeps its own name, since there's no username to
// build one from.
func (s *source) Recon(ctx context.Context, _ clip_saver.FilenameConfig) (*clip_saver.MediaSet, error) {
	d := clip_saver.Descriptor{URL: s.url, Filename: s.filename}
	m := &clip_saver.MediaSet{
		Type:     s.mediaType,
		Username: clip_saver.DefaultUsername,
	}
	if s.mediaType == clip_saver.MediaTypeVideo {
		m.Video = d
	} else {
		m.Slides = []clip_saver.Descriptor{d}
	}
	return m, nil
}

func init() {
	clip_saver.DefaultProviderRegistry.MustAdd(
		NewConfig().Provider().WithPriority(clip_saver.PriorityLowest),
	)
}
