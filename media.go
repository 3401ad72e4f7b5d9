package clip_saver

import (
	"fmt"

	"github.com/alanbriolat/clip-saver/generic"
)

// DefaultUsername stands in for the author when the backend doesn't report one.
const DefaultUsername = "tiktok_user"

type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypePhoto MediaType = "photo"
)

// A Descriptor is a remote media URL paired with the filename it should be saved as. The filename is only a hint,
// callers are responsible for avoiding collisions.
type Descriptor struct {
	URL      string
	Filename string
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Filename, d.URL)
}

// A MediaSet is everything a Source knows about a single post. Only the fields for its Type are populated: Video
// and Audio for MediaTypeVideo, Slides for MediaTypePhoto.
type MediaSet struct {
	Type     MediaType
	Username string
	Views    string
	Likes    string

	Video Descriptor
	Audio generic.Option[Descriptor]
	// Watermarked is set when no watermark-free video was available and Video is the watermarked copy.
	Watermarked bool

	Slides []Descriptor
}
