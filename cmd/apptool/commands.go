package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/84adam/jenkins-test-app/mockapi"
	"github.com/84adam/jenkins-test-app/probe"
	"github.com/84adam/jenkins-test-app/ui"
	"github.com/84adam/jenkins-test-app/utils"
)

// rootCommand creates the apptool command tree writing to out
func rootCommand(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "apptool",
		Short:         "Tools for the Jenkins CI/CD test app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.AddCommand(
		renderCommand(),
		probeCommand(),
		versionCommand(),
	)

	return rootCmd
}

func renderCommand() *cobra.Command {
	var (
		document bool
		env      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the page markup",
		Long: `Render the page the same way the server does and print it.

The build environment comes from APP_ENV unless --env is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ui.NewApp(ui.Discard)
			if cmd.Flags().Changed("env") {
				app.Env = func() string { return env }
			}

			tree := app.Render()
			if !document {
				if err := ui.Render(cmd.OutOrStdout(), tree); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			return ui.RenderDocument(cmd.OutOrStdout(), tree, ui.DocumentOptions{
				Stylesheets: []string{"/static/app.css"},
				Scripts:     []string{"/static/app.js"},
			})
		},
	}

	cmd.Flags().BoolVar(&document, "document", false, "Wrap the markup in a full HTML document")
	cmd.Flags().StringVar(&env, "env", "", "Build environment to show instead of $"+utils.BuildEnvVar)

	return cmd
}

func probeCommand() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		login   bool
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Smoke-test a running server's mock API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runProbe(ctx, cmd.OutOrStdout(), probe.New(baseURL), login)
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:3000", "Base URL of the server")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Overall probe timeout")
	cmd.Flags().BoolVar(&login, "login", false, "Also log in with the test account and fetch its profile")

	return cmd
}

func runProbe(ctx context.Context, out io.Writer, c *probe.Client, login bool) error {
	info, err := c.AppInfo(ctx)
	if err != nil {
		return fmt.Errorf("app info: %w", err)
	}
	fmt.Fprintf(out, "app:     %s %s (%s)\n", info.Name, info.Version, info.Environment)

	health, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	fmt.Fprintf(out, "health:  %s at %s\n", health.Status, health.Timestamp)

	if !login {
		return nil
	}

	session, err := c.Login(ctx, mockapi.TestUsername, mockapi.TestPassword)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	profile, err := c.Profile(ctx, session.Token)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	fmt.Fprintf(out, "profile: %s <%s> (%s)\n", profile.Username, profile.Email, profile.Role)

	return nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jenkins-test-app %s\n", ui.Version)
		},
	}
}
