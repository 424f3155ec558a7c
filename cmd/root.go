package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vton",
		Short:         "Virtual try-on CLI: upload a garment and a person photo, then compose them",
		Long:          "vton uploads a garment image and a person image to the try-on service, requests the composed result, and lets you browse and download past results.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newUploadCmd(app),
		newClearCmd(app),
		newStatusCmd(app),
		newTryOnCmd(app),
		newHistoryCmd(app),
		newDownloadCmd(app),
	)

	return rootCmd
}
