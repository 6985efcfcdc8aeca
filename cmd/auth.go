package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the returned token",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		user, err := app.Auth.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Name, user.ID)
		return nil
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the returned token",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")

		user, err := app.Auth.Register(cmd.Context(), email, password, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", user.Name, user.ID)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token and user",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored user and token claims",
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		out := cmd.OutOrStdout()

		if showConfig, _ := cmd.Flags().GetBool("config"); showConfig {
			integrations := app.Config.Integrations()
			names := make([]string, 0, len(integrations))
			for name := range integrations {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(out, "API:       %s\nWebSocket: %s\n", app.Config.APIBaseURL, app.Config.WSURL)
			for _, name := range names {
				fmt.Fprintf(out, "%-10s %v\n", name+":", integrations[name])
			}
		}

		if !app.Auth.IsAuthenticated() {
			fmt.Fprintln(out, "Not logged in")
			return nil
		}
		if user := app.Auth.AuthUser(); user != nil {
			b, _ := json.MarshalIndent(user, "", "  ")
			fmt.Fprintf(out, "User:\n%s\n", b)
		}
		claims, err := app.Auth.Claims()
		if err != nil {
			fmt.Fprintf(out, "Token is not a JWT: %v\n", err)
			return nil
		}
		fmt.Fprintf(out, "Token subject: %s role: %s\n", claims.UserIdentifier(), claims.Role)
		if claims.ExpiresAt != nil {
			state := "valid until"
			if claims.Expired(time.Now()) {
				state = "expired at"
			}
			fmt.Fprintf(out, "Token %s %s\n", state, claims.ExpiresAt.Time.Format(time.RFC3339))
		}

		if verify, _ := cmd.Flags().GetBool("verify"); verify {
			resp, err := app.Auth.Verify(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Server says valid: %v\n", resp.Valid)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("name", "", "display name")

	whoamiCmd.Flags().Bool("config", false, "also print the API endpoints and configured integrations")
	whoamiCmd.Flags().Bool("verify", false, "ask the server whether the token is valid")
}
