package cmd

import (
	"context"
	"fmt"

	renderworkflow "github.com/bnema/vton-cli/internal/adapters/render/workflow"
	"github.com/bnema/vton-cli/internal/application"
	"github.com/bnema/vton-cli/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newTryOnCmd(app *app) *cobra.Command {
	var garmentPath string
	var personPath string
	var download bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tryon",
		Short: "Compose the uploaded garment onto the uploaded person",
		Long:  "tryon uploads the images given by --garment and --person (concurrently), then requests the composed result. Slots without a flag reuse the previous upload.",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			assets := make(map[domain.AssetKind]domain.Asset, 2)
			for kind, path := range map[domain.AssetKind]string{domain.AssetGarment: garmentPath, domain.AssetPerson: personPath} {
				if path == "" {
					continue
				}
				asset, err := readAsset(path, "")
				if err != nil {
					return err
				}
				assets[kind] = asset
			}

			s, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer func() { err = s.close(cmd.Context(), err) }()

			if err := uploadAll(cmd.Context(), s.workflow, assets); err != nil {
				return err
			}

			// A new run supersedes the error left by the previous one.
			s.workflow.ClearError()

			var result domain.CompositionResult
			if isTerminal(cmd.OutOrStdout()) {
				result, err = runTryOnSpinner(cmd.Context(), cmd.OutOrStdout(), s.workflow)
			} else {
				result, err = s.workflow.TryOn(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("try-on: %w", err)
			}

			s.workflow.WaitBackground()

			// Printed once after loading finished; the placeholder has nothing left to cover.
			state := s.workflow.State()
			state.Gate.Visible = false

			if err := writeStateOutput(cmd, app, state, renderworkflow.RenderOptions{HistoryLimit: 5}, asJSON); err != nil {
				return err
			}

			if !download {
				return nil
			}

			location, err := s.workflow.Download(cmd.Context(), result.ResultURL, application.ResultFilename)
			if err != nil {
				return fmt.Errorf("download result: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				out = cmd.ErrOrStderr()
			}
			_, err = fmt.Fprintf(out, "saved %s\n", location)
			return err
		},
	}

	cmd.Flags().StringVar(&garmentPath, "garment", "", "Garment image to upload before composing")
	cmd.Flags().StringVar(&personPath, "person", "", "Person image to upload before composing")
	cmd.Flags().BoolVar(&download, "download", false, "Save the result after composing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

// uploadAll runs the slot uploads side by side. A failed upload does not
// cancel the other one.
func uploadAll(ctx context.Context, workflow *application.Workflow, assets map[domain.AssetKind]domain.Asset) error {
	var g errgroup.Group
	for kind, asset := range assets {
		g.Go(func() error {
			if _, err := workflow.UploadAsset(ctx, kind, asset); err != nil {
				return fmt.Errorf("upload %s: %w", kind, err)
			}
			return nil
		})
	}
	return g.Wait()
}
