package clip_saver

import "context"

type Source interface {
	// URL should return the canonical link for this source. It is assumed that the Provider.Match that created the
	// Source would successfully match this URL.
	URL() string
	// Recon fetches whatever is needed to describe the post, naming downloads according to names.
	Recon(ctx context.Context, names FilenameConfig) (*MediaSet, error)
}
