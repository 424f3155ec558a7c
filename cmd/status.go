package cmd

import (
	"encoding/json"
	"fmt"

	renderworkflow "github.com/bnema/vton-cli/internal/adapters/render/workflow"
	"github.com/bnema/vton-cli/internal/domain"
	"github.com/spf13/cobra"
)

type slotView struct {
	Status     domain.SlotStatus `json:"status"`
	Filename   string            `json:"filename,omitempty"`
	MediaType  string            `json:"media_type,omitempty"`
	Path       string            `json:"path,omitempty"`
	ID         int64             `json:"id,omitempty"`
	Image      string            `json:"image,omitempty"`
	UploadedAt string            `json:"uploaded_at,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type historyView struct {
	ID             int64  `json:"id"`
	ClothImage     string `json:"cloth_image,omitempty"`
	HumanImage     string `json:"human_image,omitempty"`
	GeneratedImage string `json:"generated_image,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type stateView struct {
	Garment      slotView      `json:"garment"`
	Person       slotView      `json:"person"`
	Result       string        `json:"result,omitempty"`
	Error        string        `json:"error,omitempty"`
	Validation   string        `json:"validation,omitempty"`
	History      []historyView `json:"history"`
	HistoryError string        `json:"history_error,omitempty"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var historyLimit int
	var refresh bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the uploaded images, the last result and the cached history",
		Long:  "status shows the saved workflow state. With --refresh a signed-in session fetches the history first; a failed fetch is shown in the history section.",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			opts := renderworkflow.RenderOptions{HistoryLimit: historyLimit}

			if !refresh {
				state, err := app.repo.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load workflow state: %w", err)
				}
				return writeStateOutput(cmd, app, state, opts, asJSON)
			}

			s, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer func() { err = s.close(cmd.Context(), err) }()

			if _, refreshErr := s.workflow.RefreshHistoryIfAuthenticated(cmd.Context()); refreshErr != nil {
				app.logger.Debug().Err(refreshErr).Msg("history refresh failed")
			}

			return writeStateOutput(cmd, app, s.workflow.State(), opts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().IntVar(&historyLimit, "history-limit", 5, "Maximum history entries to show (0 shows all)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the history before showing it when signed in")

	return cmd
}

func writeStateOutput(cmd *cobra.Command, app *app, state domain.State, opts renderworkflow.RenderOptions, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newStateView(state))
	}

	if opts.Now.IsZero() {
		opts.Now = app.clock.Now()
	}

	rendered, err := app.stateRenderer(state, opts)
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func newStateView(state domain.State) stateView {
	return stateView{
		Garment:      newSlotView(state.Garment),
		Person:       newSlotView(state.Person),
		Result:       state.Result.ResultURL,
		Error:        state.Status.Error,
		Validation:   state.Validation,
		History:      newHistoryViews(state.History.Records),
		HistoryError: state.History.Error,
	}
}

func newSlotView(slot domain.AssetSlot) slotView {
	view := slotView{Status: slot.Status, Error: slot.ErrorMessage}
	if slot.Asset != nil {
		view.Filename = slot.Asset.Filename
		view.MediaType = slot.Asset.MediaType
		view.Path = slot.Asset.Path
	}
	if slot.Descriptor != nil {
		view.ID = slot.Descriptor.ID
		view.Image = slot.Descriptor.Image
		view.UploadedAt = slot.Descriptor.UploadedAt
	}
	return view
}

func newHistoryViews(records []domain.HistoryRecord) []historyView {
	views := make([]historyView, 0, len(records))
	for _, record := range records {
		views = append(views, historyView{
			ID:             record.ID,
			ClothImage:     record.GarmentImageRef,
			HumanImage:     record.PersonImageRef,
			GeneratedImage: record.GeneratedImageURL,
			CreatedAt:      record.CreatedAt,
		})
	}
	return views
}
