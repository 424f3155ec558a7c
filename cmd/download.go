package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/vton-cli/internal/application"
	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/idgen"
	"github.com/spf13/cobra"
)

var errNothingToDownload = errors.New("nothing to download: run tryon first or pass --url or --history-id")

func newDownloadCmd(app *app) *cobra.Command {
	var sourceURL string
	var historyID int64
	var name string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Save the last result, a history entry or any image URL",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if sourceURL != "" && historyID != 0 {
				return errors.New("--url and --history-id are mutually exclusive")
			}

			s, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer func() { err = s.close(cmd.Context(), err) }()

			target, filename, err := resolveDownload(cmd.Context(), s.workflow, sourceURL, historyID)
			if err != nil {
				return err
			}
			if name != "" {
				filename = name
			}

			location, err := s.workflow.Download(cmd.Context(), target, filename)
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", location)
			return err
		},
	}

	cmd.Flags().StringVar(&sourceURL, "url", "", "Image URL to download")
	cmd.Flags().Int64Var(&historyID, "history-id", 0, "History entry to download")
	cmd.Flags().StringVar(&name, "name", "", "File name to save as")

	return cmd
}

// resolveDownload picks the source URL and default file name. A history id
// missing from the cached list triggers one refresh when signed in.
func resolveDownload(ctx context.Context, workflow *application.Workflow, sourceURL string, historyID int64) (string, string, error) {
	switch {
	case sourceURL != "":
		return sourceURL, application.ResultFilename, nil
	case historyID != 0:
		record, ok := findHistoryRecord(workflow.State().History.Records, historyID)
		if !ok {
			if _, err := workflow.RefreshHistoryIfAuthenticated(ctx); err != nil {
				return "", "", fmt.Errorf("refresh history: %w", err)
			}
			record, ok = findHistoryRecord(workflow.State().History.Records, historyID)
		}
		if !ok {
			return "", "", fmt.Errorf("history entry %d not found", historyID)
		}
		if record.GeneratedImageURL == "" {
			return "", "", fmt.Errorf("history entry %d has no generated image", historyID)
		}

		filename, err := idgen.HistoryFilename()
		if err != nil {
			return "", "", err
		}
		return record.GeneratedImageURL, filename, nil
	default:
		result := workflow.State().Result.ResultURL
		if result == "" {
			return "", "", errNothingToDownload
		}
		return result, application.ResultFilename, nil
	}
}

func findHistoryRecord(records []domain.HistoryRecord, id int64) (domain.HistoryRecord, bool) {
	for _, record := range records {
		if record.ID == id {
			return record, true
		}
	}
	return domain.HistoryRecord{}, false
}
