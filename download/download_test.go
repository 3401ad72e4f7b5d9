package download

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestWithDownloadState_Cleanup(t *testing.T) {
	assert := assert_.New(t)
	base := filepath.Join(t.TempDir(), "nested", "target")

	var scratch string
	err := WithDownloadState(func(state *DownloadState) error {
		scratch = state.Dir()
		assert.Equal(base, filepath.Dir(scratch))
		f, err := state.CreateTemp("blob-*")
		assert.NoError(err)
		_, _ = f.WriteString("data")
		return f.Close()
	}, WithTempDir(base))
	assert.NoError(err)
	_, err = os.Stat(scratch)
	assert.True(os.IsNotExist(err), "scratch dir should be removed")
	// The base directory was created and is kept
	_, err = os.Stat(base)
	assert.NoError(err)
}

func TestWithDownloadState_CleanupOnError(t *testing.T) {
	assert := assert_.New(t)
	failure := errors.New("failure")

	var scratch string
	err := WithDownloadState(func(state *DownloadState) error {
		scratch = state.Dir()
		return failure
	}, WithTempDir(t.TempDir()))
	assert.ErrorIs(err, failure)
	_, err = os.Stat(scratch)
	assert.True(os.IsNotExist(err), "scratch dir should be removed")
}
