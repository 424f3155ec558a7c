package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API token",
	}

	cmd.AddCommand(
		newAuthLoginCmd(app),
		newAuthRefreshCmd(app),
		newAuthSetCmd(app),
		newAuthRemoveCmd(app),
		newAuthStatusCmd(app),
	)

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API token for the active profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.credentials.Set(cmd.Context(), token); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "token stored for profile %q\n", app.credentials.Profile())
			return err
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.credentials.Remove(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "token removed for profile %q\n", app.credentials.Profile())
			return err
		},
	}
}

func newAuthStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, err := app.credentials.Load(cmd.Context())
			if err != nil {
				return err
			}

			state := "signed out"
			if _, ok := tokens.CurrentToken(); ok {
				state = "signed in"
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "profile %q: %s\n", app.credentials.Profile(), state)
			return err
		},
	}
}

func newAuthLoginCmd(app *app) *cobra.Command {
	var email string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password and store the issued tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, passwordStdin)
			if err != nil {
				return err
			}

			session, err := app.sessions.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if err := app.credentials.Set(cmd.Context(), session.AccessToken); err != nil {
				return err
			}
			if session.RefreshToken != "" {
				if err := app.credentials.SetRefresh(cmd.Context(), session.RefreshToken); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (profile %q)\n", email, app.credentials.Profile())
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthRefreshCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored refresh token for a new access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			refreshToken, err := app.credentials.RefreshToken(cmd.Context())
			if err != nil {
				return err
			}

			session, err := app.sessions.Refresh(cmd.Context(), refreshToken)
			if err != nil {
				return err
			}

			if err := app.credentials.Set(cmd.Context(), session.AccessToken); err != nil {
				return err
			}
			if session.RefreshToken != refreshToken {
				if err := app.credentials.SetRefresh(cmd.Context(), session.RefreshToken); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "access token refreshed for profile %q\n", app.credentials.Profile())
			return err
		},
	}
}

// readPassword takes the first line of stdin with --password-stdin, and
// otherwise prompts without echo when stdin is a terminal.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	in := cmd.InOrStdin()
	if fromStdin {
		return readPasswordLine(in)
	}

	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no terminal to prompt for a password; use --password-stdin")
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return string(raw), nil
}

func readPasswordLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is empty")
	}
	return password, nil
}
