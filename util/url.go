package util

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

var (
	ErrNoFilename      = errors.New("cannot extract valid filename")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrNotHTTP         = errors.New("not an absolute http(s) URL")
)

// FilenameFromURL takes the last path element of the URL, ignoring the query string.
func FilenameFromURL(u *url.URL) (string, error) {
	if u == nil {
		return "", ErrNoFilename
	}
	p := strings.Trim(u.Path, "/")
	if p == "" {
		return "", ErrNoFilename
	}
	filename := path.Base(p)
	if err := ValidateFilename(filename); err != nil {
		return "", ErrNoFilename
	}
	return filename, nil
}

// Extension returns the lowercase extension of filename without the leading dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
}

// ValidateFilename rejects anything that isn't a plain name within a single directory.
func ValidateFilename(filename string) error {
	switch {
	case filename == "":
		return fmt.Errorf("%w: empty", ErrInvalidFilename)
	case strings.ContainsAny(filename, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidFilename, filename)
	case strings.ReplaceAll(filename, ".", "") == "":
		// Don't allow "filenames" that are just ".", "..", etc.
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	case strings.ContainsRune(filename, 0):
		return fmt.Errorf("%w: %q contains NUL", ErrInvalidFilename, filename)
	}
	return nil
}

// ParseHTTPURL parses s, requiring an http or https scheme and a host.
func ParseHTTPURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrNotHTTP, s)
	}
	return u, nil
}
