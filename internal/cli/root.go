package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/2beens/bedgemon/internal/config"

	"github.com/spf13/cobra"
)

const AppSecretEnvVar = "BEDGEMON_APP_SECRET"

// App is the state shared by all commands. Client is set before any command
// that talks to the service runs.
type App struct {
	Client *Client

	version    string
	addr       string
	configPath string
	env        string
}

// NewRootCmd creates the top-level "bedgemonctl" command.
func NewRootCmd(version string) *cobra.Command {
	app := &App{version: version}

	root := &cobra.Command{
		Use:           "bedgemonctl",
		Short:         "Operate the bedgemon workout sync service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.addr, "addr", "", "service address, e.g. http://localhost:9000 (overrides config)")
	root.PersistentFlags().StringVar(&app.configPath, "config", "./config.toml", "path for the TOML config file")
	root.PersistentFlags().StringVar(&app.env, "env", "development", "environment [prod | production | dev | development]")

	root.AddCommand(
		newTemplatesCmd(app),
		newWorkoutsCmd(app),
		newDraftCmd(app),
		newSignInCmd(app),
		newChooseProfileCmd(app),
		newSessionCmd(app),
		newHashSecretCmd(),
	)

	return root
}

// connect is the PersistentPreRunE of every command that talks to the service.
func (app *App) connect(_ *cobra.Command, _ []string) error {
	baseURL, err := app.baseURL()
	if err != nil {
		return err
	}
	app.Client = NewClient(baseURL, os.Getenv(AppSecretEnvVar), app.version)
	return nil
}

func (app *App) baseURL() (string, error) {
	if app.addr != "" {
		if _, err := url.ParseRequestURI(app.addr); err != nil {
			return "", fmt.Errorf("invalid addr [%s]: %w", app.addr, err)
		}
		return app.addr, nil
	}

	cfg, err := config.Load(app.env, app.configPath)
	if err != nil {
		return "", err
	}
	host := cfg.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port)), nil
}

// printJSON writes the response body indented, or as is when it is not JSON.
func printJSON(w io.Writer, body []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(body))
		return err
	}
	_, err := fmt.Fprintln(w, out.String())
	return err
}

func printResponse(cmd *cobra.Command, resp *Response) error {
	if resp.FromCache {
		fmt.Fprintln(cmd.ErrOrStderr(), "remote store unavailable, showing the local copy")
	}
	return printJSON(cmd.OutOrStdout(), resp.Body)
}
