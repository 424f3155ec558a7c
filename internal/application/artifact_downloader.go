package application

import (
	"context"
	"errors"
	"strings"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/rs/zerolog"
)

const ResultFilename = "virtual-try-on-result.png"

// ArtifactDownloader saves a remote image locally. Its failures are reported
// as notices and never reach the workflow error state.
type ArtifactDownloader struct {
	fetcher  ports.ArtifactFetcher
	staging  ports.ArtifactStaging
	sink     ports.ArtifactSink
	notifier ports.Notifier
	metrics  ports.Metrics
	logger   zerolog.Logger
}

func NewArtifactDownloader(fetcher ports.ArtifactFetcher, staging ports.ArtifactStaging, sink ports.ArtifactSink, notifier ports.Notifier, metrics ports.Metrics, logger zerolog.Logger) *ArtifactDownloader {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &ArtifactDownloader{
		fetcher:  fetcher,
		staging:  staging,
		sink:     sink,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.With().Str("component", "downloads").Logger(),
	}
}

// Download fetches sourceURL and saves it as suggestedFilename, returning the
// saved location. The staged copy is released before Download returns.
func (d *ArtifactDownloader) Download(ctx context.Context, sourceURL, suggestedFilename string) (string, error) {
	location, err := d.download(ctx, sourceURL, suggestedFilename)
	if err != nil {
		d.metrics.ObserveDownload(ports.OutcomeFailure)
		d.logger.Warn().Err(err).Str("url", sourceURL).Msg("download failed")
		d.notifier.Notify(ports.Notice{Level: ports.NoticeWarning, Message: domain.MessageDownloadFallback})
		return "", err
	}

	d.metrics.ObserveDownload(ports.OutcomeSuccess)
	d.logger.Debug().Str("url", sourceURL).Str("location", location).Msg("artifact saved")

	return location, nil
}

func (d *ArtifactDownloader) download(ctx context.Context, sourceURL, suggestedFilename string) (location string, err error) {
	if strings.TrimSpace(sourceURL) == "" {
		return "", domain.NewError(domain.KindFetchFailed, "no image to download", nil)
	}
	if strings.TrimSpace(suggestedFilename) == "" {
		suggestedFilename = ResultFilename
	}

	body, err := d.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		if domain.KindOf(err) == "" {
			err = domain.NewError(domain.KindFetchFailed, "", err)
		}
		return "", err
	}
	defer func() { _ = body.Close() }()

	staged, err := d.staging.Stage(ctx, body)
	if err != nil {
		return "", domain.NewError(domain.KindDownload, "", err)
	}
	defer func() {
		if releaseErr := staged.Release(); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()

	location, err = d.sink.Save(ctx, staged, suggestedFilename)
	if err != nil {
		return "", domain.NewError(domain.KindDownload, "", err)
	}

	return location, nil
}
