// Package download manages the scratch space a single download lives in until it is saved under its final name.
package download

import (
	"os"

	"go.uber.org/zap"
)

const scratchPattern = ".clip-saver-*"

type downloadConfig struct {
	baseTempDir string
}

type DownloadConfigOption func(*downloadConfig)

// WithTempDir puts the scratch directory inside dir. Use the final target directory so that the finished file can be
// renamed into place rather than copied across filesystems.
func WithTempDir(dir string) DownloadConfigOption {
	return func(c *downloadConfig) {
		c.baseTempDir = dir
	}
}

// DownloadState is the scratch space of one download. It only exists for the duration of WithDownloadState.
type DownloadState struct {
	config  downloadConfig
	tempDir string
}

func newDownloadState(config downloadConfig) (*DownloadState, error) {
	if len(config.baseTempDir) > 0 {
		if err := os.MkdirAll(config.baseTempDir, 0755); err != nil {
			return nil, err
		}
	}
	tempDir, err := os.MkdirTemp(config.baseTempDir, scratchPattern)
	if err != nil {
		return nil, err
	}
	return &DownloadState{config: config, tempDir: tempDir}, nil
}

func (s *DownloadState) close() {
	if err := os.RemoveAll(s.tempDir); err != nil {
		zap.S().Named("download").Warnf("failed to clean up scratch dir %s: %v", s.tempDir, err)
	}
}

// Dir is the scratch directory.
func (s *DownloadState) Dir() string {
	return s.tempDir
}

func (s *DownloadState) CreateTemp(pattern string) (*os.File, error) {
	return os.CreateTemp(s.tempDir, pattern)
}

// WithDownloadState runs f with a fresh scratch directory, which is removed again however f returns.
func WithDownloadState(f func(state *DownloadState) error, opts ...DownloadConfigOption) error {
	config := downloadConfig{
		baseTempDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(&config)
	}
	state, err := newDownloadState(config)
	if err != nil {
		return err
	}
	defer state.close()
	return f(state)
}
