package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bnema/vton-cli/internal/ports"
)

const stagedFilePattern = "vton-artifact-*"

// TempStaging holds fetched images in temporary files until they are saved.
type TempStaging struct {
	// Dir defaults to os.TempDir().
	Dir string
}

var _ ports.ArtifactStaging = TempStaging{}

func (s TempStaging) Stage(ctx context.Context, body io.Reader) (ports.StagedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.CreateTemp(s.Dir, stagedFilePattern)
	if err != nil {
		return nil, fmt.Errorf("create staged artifact: %w", err)
	}

	staged := &stagedFile{path: file.Name()}
	size, err := io.Copy(file, &contextReader{ctx: ctx, r: body})
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = staged.Release()
		return nil, fmt.Errorf("write staged artifact: %w", err)
	}

	staged.size = size
	return staged, nil
}

type stagedFile struct {
	path string
	size int64

	once       sync.Once
	releaseErr error
}

func (f *stagedFile) Path() string { return f.path }
func (f *stagedFile) Size() int64  { return f.size }

// Release removes the temporary file. Later calls are no-ops.
func (f *stagedFile) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.releaseErr = fmt.Errorf("release staged artifact: %w", err)
		}
	})
	return f.releaseErr
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
