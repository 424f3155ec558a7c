package cmd

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/spf13/cobra"
)

const maxAssetBytes = 32 << 20

func newUploadCmd(app *app) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:       "upload garment|person <file>",
		Short:     "Upload a garment or person image",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.AssetGarment), string(domain.AssetPerson)},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			kind, err := domain.ParseAssetKind(args[0])
			if err != nil {
				return err
			}

			asset, err := readAsset(args[1], contentType)
			if err != nil {
				return err
			}

			s, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer func() { err = s.close(cmd.Context(), err) }()

			descriptor, err := s.workflow.UploadAsset(cmd.Context(), kind, asset)
			if err != nil {
				return fmt.Errorf("upload %s: %w", kind, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s uploaded (#%d) %s\n", kind, descriptor.ID, descriptor.Image)
			return err
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "Media type of the file (detected when empty)")

	return cmd
}

const clearErrorTarget = "error"

func newClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear garment|person|error",
		Short: "Remove the image selected for a slot, or dismiss the last try-on error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			target := strings.ToLower(strings.TrimSpace(args[0]))

			var kind domain.AssetKind
			if target != clearErrorTarget {
				if kind, err = domain.ParseAssetKind(target); err != nil {
					return err
				}
			}

			s, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer func() { err = s.close(cmd.Context(), err) }()

			if target == clearErrorTarget {
				s.workflow.ClearError()
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "error cleared")
				return err
			}

			if err := s.workflow.ClearAsset(kind); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", kind)
			return err
		},
	}
}

// readAsset loads a local image. The media type comes from the flag, then the
// extension, then the file content.
func readAsset(path, contentType string) (domain.Asset, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("read image: %w", err)
	}
	if info.IsDir() {
		return domain.Asset{}, fmt.Errorf("read image: %s is a directory", path)
	}
	if info.Size() > maxAssetBytes {
		return domain.Asset{}, fmt.Errorf("read image: %s exceeds %d bytes", path, maxAssetBytes)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("read image: %w", err)
	}

	return domain.Asset{
		Filename:  filepath.Base(absPath),
		MediaType: detectMediaType(absPath, contentType, data),
		Path:      absPath,
		Data:      data,
	}, nil
}

func detectMediaType(path, contentType string, data []byte) string {
	if mediaType := baseMediaType(contentType); mediaType != "" {
		return mediaType
	}
	if mediaType := baseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))); mediaType != "" {
		return mediaType
	}
	return baseMediaType(http.DetectContentType(data))
}

func baseMediaType(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return mediaType
}
