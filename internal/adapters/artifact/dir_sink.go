package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/vton-cli/internal/ports"
)

const (
	outputDirMode  = 0o755
	outputFileMode = 0o644
	maxNameProbes  = 1000
)

// DirSink copies artifacts into a local directory. An existing file is never
// overwritten; a numbered name such as "result (1).png" is used instead.
type DirSink struct {
	Dir string
}

var _ ports.ArtifactSink = DirSink{}

func (s DirSink) Save(ctx context.Context, artifact ports.StagedArtifact, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, outputDirMode); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	src, err := os.Open(artifact.Path())
	if err != nil {
		return "", fmt.Errorf("open staged artifact: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, path, err := createUnique(dir, name)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, &contextReader{ctx: ctx, r: src}); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxNameProbes; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, outputFileMode)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create %s: %w", path, err)
		}
	}

	return nil, "", fmt.Errorf("no free file name for %q in %s", name, dir)
}

func sanitizeFilename(filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) || name == "" || name == ".." {
		return "", fmt.Errorf("invalid file name %q", filename)
	}
	return name, nil
}
