package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/vton-cli/internal/application"
	"github.com/bnema/vton-cli/internal/ports"
	"github.com/spf13/cobra"
)

// session is one command's view of the workflow: state is loaded from the
// repository on open and written back on close.
type session struct {
	app      *app
	workflow *application.Workflow
}

func openSession(cmd *cobra.Command, app *app) (*session, error) {
	ctx := cmd.Context()

	tokens, err := app.credentials.Load(ctx)
	if err != nil {
		return nil, err
	}

	state, err := app.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load workflow state: %w", err)
	}

	workflow := application.NewWorkflow(application.Dependencies{
		Tokens:         tokens,
		API:            app.api,
		Fetcher:        app.api,
		Staging:        app.staging,
		Sink:           lazySink{resolve: app.sink},
		Notifier:       cliNotifier{out: cmd.ErrOrStderr()},
		Metrics:        app.metrics,
		Clock:          app.clock,
		Logger:         app.logger,
		MinimumDisplay: app.settings.SkeletonMinDisplay,
		Initial:        &state,
	})

	return &session{app: app, workflow: workflow}, nil
}

// close tears the workflow down, then persists its state. The returned error
// joins err with any persistence failure.
func (s *session) close(ctx context.Context, err error) error {
	s.workflow.Close()

	ctx = context.WithoutCancel(ctx)
	if saveErr := s.app.repo.Save(ctx, s.workflow.State()); saveErr != nil {
		err = errors.Join(err, fmt.Errorf("save workflow state: %w", saveErr))
	}
	if metricsErr := s.app.metrics.WriteTextfile(s.app.settings.MetricsTextfile); metricsErr != nil {
		s.app.logger.Warn().Err(metricsErr).Str("path", s.app.settings.MetricsTextfile).Msg("write metrics textfile")
	}

	return err
}

type lazySink struct {
	resolve func(context.Context) (ports.ArtifactSink, error)
}

func (l lazySink) Save(ctx context.Context, artifact ports.StagedArtifact, filename string) (string, error) {
	sink, err := l.resolve(ctx)
	if err != nil {
		return "", err
	}
	return sink.Save(ctx, artifact, filename)
}

type cliNotifier struct {
	out io.Writer
}

func (n cliNotifier) Shake() {
	_, _ = fmt.Fprintln(n.out, "Sign in first: run `vton auth set --token <token>`.")
}

func (n cliNotifier) Notify(notice ports.Notice) {
	_, _ = fmt.Fprintf(n.out, "%s: %s\n", notice.Level, notice.Message)
}
