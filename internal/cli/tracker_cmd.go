package cli

import (
	"net/http"
	"net/url"

	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "templates",
		Short:             "Browse and remove workout templates",
		PersistentPreRunE: app.connect,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List templates sorted by name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := app.Client.Do(cmd.Context(), http.MethodGet, "/templates", nil)
				if err != nil {
					return err
				}
				return printResponse(cmd, resp)
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a template",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return err
				}
				resp, err := app.Client.Do(cmd.Context(), http.MethodDelete, "/templates/"+id.String(), nil)
				if err != nil {
					return err
				}
				return printResponse(cmd, resp)
			},
		},
	)

	return cmd
}

func newWorkoutsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "workouts",
		Short:             "Browse workout history",
		PersistentPreRunE: app.connect,
	}

	var profile string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List workout days of a profile, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := withProfile("/workouts", profile)
			if err != nil {
				return err
			}
			resp, err := app.Client.Do(cmd.Context(), http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			return printResponse(cmd, resp)
		},
	}
	listCmd.Flags().StringVar(&profile, "profile", "", "profile [sarah | dan], the signed in profile when empty")

	cmd.AddCommand(listCmd)
	return cmd
}

// withProfile validates the profile and adds it as the query of path.
func withProfile(path, profile string) (string, error) {
	if profile == "" {
		return path, nil
	}
	p, err := workout.ParseProfile(profile)
	if err != nil {
		return "", err
	}
	return path + "?" + url.Values{"profile": {p.String()}}.Encode(), nil
}
