package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/trestletech/goforce/pkg/force"
	"github.com/trestletech/goforce/pkg/forceclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username      string
		password      string
		securityToken string
		loginURL      string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Salesforce organization",
		Long: `Authenticate with the username-password flow and persist the resulting
session to the config file for later commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = viper.GetString("username")
			}

			if username == "" {
				return ErrUsernameRequired
			}

			if password == "" {
				_, _ = fmt.Fprintf(os.Stdout, "Password for %s: ", username)

				passwordBytes, err := term.ReadPassword(int(syscall.Stdin))

				_, _ = os.Stdout.WriteString("\n")

				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}

				password = string(passwordBytes)
			}

			config := &force.Config{
				LoginURL:      loginURL,
				Username:      username,
				Password:      password,
				SecurityToken: securityToken,
				APIVersion:    viper.GetString("api_version"),
				Debug:         viper.GetBool("verbose"),
			}

			client, err := forceclient.New(context.Background(), config)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			session := client.Session()

			err = saveConfig(&CLIConfig{
				InstanceURL: session.InstanceURL,
				SessionID:   session.SessionID,
				APIVersion:  session.APIVersion,
				LoginURL:    loginURL,
				Username:    username,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in to %s (API %s)\n", session.InstanceURL, session.APIVersion)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "login username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "login password (prompted when omitted)")
	cmd.Flags().StringVar(&securityToken, "token", "", "security token appended to the password")
	cmd.Flags().StringVar(&loginURL, "login-url", "", "authentication host (defaults to production)")

	return cmd
}
