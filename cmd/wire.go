package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bnema/vton-cli/internal/adapters/artifact"
	"github.com/bnema/vton-cli/internal/adapters/auth"
	"github.com/bnema/vton-cli/internal/adapters/credentials"
	"github.com/bnema/vton-cli/internal/adapters/metrics"
	renderworkflow "github.com/bnema/vton-cli/internal/adapters/render/workflow"
	tomlrepo "github.com/bnema/vton-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/vton-cli/internal/adapters/secrets/chain"
	"github.com/bnema/vton-cli/internal/adapters/vtonapi"
	"github.com/bnema/vton-cli/internal/config"
	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/logging"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type app struct {
	settings      config.Settings
	logger        zerolog.Logger
	credentials   *credentials.Store
	sessions      auth.SessionClient
	repo          ports.StateRepository
	api           vtonapi.Client
	metrics       *metrics.Recorder
	staging       ports.ArtifactStaging
	sink          func(context.Context) (ports.ArtifactSink, error)
	stateRenderer func(domain.State, renderworkflow.RenderOptions) (string, error)
	clock         clockwork.Clock
}

func wireApp() (*app, error) {
	settings, cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, logging.Options{Level: settings.LogLevel, Format: settings.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	secretStore, err := chainstore.ForBackend(settings.CredentialsBackend, settings.CredentialsDir)
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	repo, err := tomlrepo.NewStateRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	return &app{
		settings:    settings,
		logger:      logger,
		credentials: credentials.NewStore(secretStore, settings.AuthProfile),
		sessions: auth.SessionClient{
			API:        auth.DefaultAPI(settings.APIBaseURL),
			HTTPClient: http.DefaultClient,
		},
		repo:        repo,
		api: vtonapi.Client{
			BaseURL:    settings.APIBaseURL,
			Paths:      vtonapi.DefaultPaths(),
			HTTPClient: http.DefaultClient,
			Logger:     logger,
		},
		metrics:       metrics.NewRecorder(),
		staging:       artifact.TempStaging{},
		sink:          sinkFactory(settings),
		stateRenderer: renderworkflow.Render,
		clock:         clockwork.NewRealClock(),
	}, nil
}

// sinkFactory defers S3 client construction until something is downloaded.
func sinkFactory(settings config.Settings) func(context.Context) (ports.ArtifactSink, error) {
	return func(ctx context.Context) (ports.ArtifactSink, error) {
		if settings.S3.Bucket == "" {
			dir, err := filepath.Abs(settings.OutputDir)
			if err != nil {
				return nil, fmt.Errorf("resolve output directory: %w", err)
			}
			return artifact.DirSink{Dir: dir}, nil
		}

		sink, err := artifact.NewS3Sink(ctx, settings.S3.Bucket, settings.S3.Prefix, settings.S3.Region, settings.S3.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("wire s3 sink: %w", err)
		}
		return sink, nil
	}
}
