package saver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrTriggerFired = errors.New("save trigger already fired")

// A SaveTrigger moves a downloaded blob to its final name. It can only be fired once.
type SaveTrigger struct {
	blobPath string
	target   string
	fired    bool
}

func newSaveTrigger(blobPath string, dir string, filename string) *SaveTrigger {
	return &SaveTrigger{
		blobPath: blobPath,
		target:   filepath.Join(dir, filename),
	}
}

func (t *SaveTrigger) Target() string {
	return t.target
}

// Fire saves the blob, replacing anything already at the target path.
func (t *SaveTrigger) Fire() error {
	if t.fired {
		return ErrTriggerFired
	}
	t.fired = true
	if err := os.Rename(t.blobPath, t.target); err != nil {
		return fmt.Errorf("failed to save %s: %w", t.target, err)
	}
	return nil
}
