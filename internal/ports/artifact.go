package ports

import (
	"context"
	"io"
)

// ArtifactFetcher retrieves a remote image. A non-success response is a
// *domain.Error of kind fetch_failed.
type ArtifactFetcher interface {
	Fetch(ctx context.Context, sourceURL string) (io.ReadCloser, error)
}

// StagedArtifact is the transient local copy of a fetched image.
type StagedArtifact interface {
	Path() string
	Size() int64
	Release() error
}

type ArtifactStaging interface {
	Stage(ctx context.Context, body io.Reader) (StagedArtifact, error)
}

// ArtifactSink saves a staged artifact under the suggested filename and
// returns where it ended up.
type ArtifactSink interface {
	Save(ctx context.Context, artifact StagedArtifact, filename string) (string, error)
}
