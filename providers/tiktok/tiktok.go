// Package tiktok matches TikTok post links and asks the backend for their media.
package tiktok

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/alanbriolat/clip-saver"
	"github.com/alanbriolat/clip-saver/generic"
	"github.com/alanbriolat/clip-saver/internal/api"
)

const ProviderName = "tiktok"

var (
	protocols  = generic.NewSet("http", "https")
	postHosts  = generic.NewSet("tiktok.com", "www.tiktok.com", "m.tiktok.com")
	shortHosts = generic.NewSet("vm.tiktok.com", "vt.tiktok.com")

	postPath   = regexp.MustCompile(`^/@[^/]+/(video|photo)/\d+/?$`)
	mobilePath = regexp.MustCompile(`^/v/\d+(\.html)?/?$`)
	shortPath  = regexp.MustCompile(`^/[A-Za-z0-9_-]+/?$`)
)

// Backend looks up a post; *api.Client is the real implementation.
type Backend interface {
	Fetch(ctx context.Context, link string) (*api.Response, error)
}

type Config struct {
	Backend Backend
}

func New(backend Backend) Config {
	return Config{Backend: backend}
}

// Normalize turns s into an absolute TikTok post link, or explains why it isn't one. A missing scheme is taken to be
// https, since that's what people usually copy from the share menu.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty link")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	parsedURL, err := url.Parse(s)
	if err != nil {
		return "", err
	}
	if !protocols.Contains(parsedURL.Scheme) {
		return "", fmt.Errorf("unknown URL scheme %v", parsedURL.Scheme)
	}
	host := strings.ToLower(parsedURL.Hostname())
	switch {
	case postHosts.Contains(host):
		if !postPath.MatchString(parsedURL.Path) && !(host == "m.tiktok.com" && mobilePath.MatchString(parsedURL.Path)) {
			return "", fmt.Errorf("not a TikTok post: %v", parsedURL.Path)
		}
	case shortHosts.Contains(host):
		if !shortPath.MatchString(parsedURL.Path) {
			return "", fmt.Errorf("not a TikTok short link: %v", parsedURL.Path)
		}
	default:
		return "", fmt.Errorf("unknown host %v", host)
	}
	parsedURL.Fragment = ""
	return parsedURL.String(), nil
}

func (c Config) Match(s string) (clip_saver.Source, error) {
	link, err := Normalize(s)
	if err != nil {
		return nil, err
	}
	return &source{backend: c.Backend, url: link}, nil
}

func (c Config) Provider() clip_saver.Provider {
	return clip_saver.Provider{
		Name:  ProviderName,
		Match: c.Match,
	}
}

type source struct {
	backend Backend
	url     string
}

func (s *source) URL() string {
	return s.url
}

func (s *source) String() string {
	return s.URL()
}

func (s *source) Recon(ctx context.Context, names clip_saver.FilenameConfig) (*clip_saver.MediaSet, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("no backend configured")
	}
	resp, err := s.backend.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}
	return resp.MediaSet(names)
}
