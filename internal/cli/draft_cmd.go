package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "draft",
		Short:             "Manage the in-progress workout",
		PersistentPreRunE: app.connect,
	}

	var profile string
	cmd.PersistentFlags().StringVar(&profile, "profile", "", "profile [sarah | dan], the signed in profile when empty")

	simple := func(use, short, method, path string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fullPath, err := withProfile(path, profile)
				if err != nil {
					return err
				}
				resp, err := app.Client.Do(cmd.Context(), method, fullPath, nil)
				if err != nil {
					return err
				}
				return printResponse(cmd, resp)
			},
		}
	}

	var templateID, date string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new draft, replacing the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if templateID != "" {
				id, err := uuid.Parse(templateID)
				if err != nil {
					return fmt.Errorf("invalid template id: %w", err)
				}
				body["templateId"] = id
			}
			if date != "" {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				body["date"] = d
			}

			path, err := withProfile("/draft/start", profile)
			if err != nil {
				return err
			}
			resp, err := app.Client.Do(cmd.Context(), http.MethodPost, path, body)
			if err != nil {
				return err
			}
			return printResponse(cmd, resp)
		},
	}
	startCmd.Flags().StringVar(&templateID, "template", "", "id of the template to prefill the draft from")
	startCmd.Flags().StringVar(&date, "date", "", "workout date, YYYY-MM-DD or RFC3339 (default now)")

	cmd.AddCommand(
		simple("show", "Show the current draft", http.MethodGet, "/draft"),
		startCmd,
		simple("finish", "Commit the draft to the workout history", http.MethodPost, "/draft/finish"),
		simple("discard", "Throw the draft away", http.MethodDelete, "/draft"),
	)

	return cmd
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date [%s], use YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}
