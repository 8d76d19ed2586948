package cli

import (
	"fmt"
	"net/http"

	"github.com/2beens/bedgemon/internal/auth"
	"github.com/2beens/bedgemon/internal/workout"
	"github.com/2beens/bedgemon/pkg"

	"github.com/spf13/cobra"
)

func newSignInCmd(app *App) *cobra.Command {
	var identity auth.Identity
	cmd := &cobra.Command{
		Use:               "signin",
		Short:             "Sign in with an identity from the platform sign-in",
		Args:              cobra.NoArgs,
		PersistentPreRunE: app.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Client.Do(cmd.Context(), http.MethodPost, "/auth/signin", identity)
			if err != nil {
				return err
			}
			return printResponse(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&identity.UserID, "user-id", "", "stable user id of the identity")
	cmd.Flags().StringVar(&identity.Email, "email", "", "email of the identity, only known on first sign in")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newChooseProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "choose-profile PROFILE",
		Short:             "Bind the pending sign-in to a profile [sarah | dan]",
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: app.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := workout.ParseProfile(args[0])
			if err != nil {
				return err
			}
			resp, err := app.Client.Do(cmd.Context(), http.MethodPost, "/auth/profile", map[string]string{"profile": profile.String()})
			if err != nil {
				return err
			}
			return printResponse(cmd, resp)
		},
	}
}

func newSessionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:               "session",
		Short:             "Show the signed in profile",
		Args:              cobra.NoArgs,
		PersistentPreRunE: app.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Client.Do(cmd.Context(), http.MethodGet, "/auth/session", nil)
			if err != nil {
				return err
			}
			return printResponse(cmd, resp)
		},
	}
}

func newHashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret SECRET",
		Short: "Print the bcrypt hash to set as BEDGEMON_APP_SECRET_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := pkg.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
