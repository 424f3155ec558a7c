package cmd

import (
	"encoding/json"
	"fmt"

	renderworkflow "github.com/bnema/vton-cli/internal/adapters/render/workflow"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Refresh and show past try-on results",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer func() { err = s.close(cmd.Context(), err) }()

			records, err := s.workflow.RefreshHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("refresh history: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(newHistoryViews(records))
			}

			return writeStateOutput(cmd, app, s.workflow.State(), renderworkflow.RenderOptions{HistoryLimit: limit}, false)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show (0 shows all)")

	return cmd
}
