package auth

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
	"github.com/gauciv/cardea/internal/config"
	"github.com/gauciv/cardea/pkg/sdk"
)

var (
	loginEmail    string
	loginPassword string
	useMicrosoft  bool
	managedCode   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Cardea",
	Long: `Authenticates with the Cardea backend.

Three methods are supported:
1. Local credentials (default): email and password, prompted interactively
   unless --email and --password are given.
2. Microsoft sign-in: --microsoft initiates a device authorization flow
   and exchanges the resulting identity token with the backend.
3. Managed gateway: --managed-provider prints the gateway login URL for
   the named provider (aad, google, github). Only available when the CLI
   is configured against a managed deployment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		a := app.MustFromContext(cmd.Context())
		sess, err := a.Session()
		if err != nil {
			return err
		}

		if managedCode != "" {
			u := sess.ManagedLoginURL(managedCode)
			if u == "" {
				return fmt.Errorf("managed sign-in requires a managed deployment (set managed_origin): %w", sdk.ErrProviderNotConfigured)
			}
			fmt.Println("Open the following URL in your browser to sign in:")
			fmt.Println(u)
			return nil
		}

		if useMicrosoft {
			if !sess.MicrosoftAvailable() {
				return fmt.Errorf("microsoft sign-in is not configured (set microsoft_issuer and microsoft_client_id): %w", sdk.ErrProviderNotConfigured)
			}
			id, err := sess.LoginWithMicrosoft(cmd.Context())
			if err != nil {
				if errors.Is(err, sdk.ErrUserCancelled) {
					fmt.Println("Sign-in cancelled.")
					return nil
				}
				return err
			}
			fmt.Println("------------------------------------------------------------")
			fmt.Printf("✅ Login successful!\n")
			fmt.Printf("Authenticated as: %s\n", id.DisplayLabel)
			return nil
		}

		email := loginEmail
		password := loginPassword
		if email == "" {
			if cfg.NonInteractive {
				return fmt.Errorf("--email is required in non-interactive mode")
			}
			email, err = pterm.DefaultInteractiveTextInput.Show("Email")
			if err != nil {
				return err
			}
		}
		if password == "" {
			if cfg.NonInteractive {
				return fmt.Errorf("--password is required in non-interactive mode")
			}
			password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
			if err != nil {
				return err
			}
		}

		id, err := sess.Login(cmd.Context(), email, password)
		if err != nil {
			if errors.Is(err, sdk.ErrInvalidCredentials) {
				return fmt.Errorf("invalid email or password")
			}
			return err
		}

		fmt.Println("------------------------------------------------------------")
		fmt.Printf("✅ Login successful!\n")
		fmt.Printf("Authenticated as: %s\n", id.DisplayLabel)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address for local-credential login")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password for local-credential login")
	loginCmd.Flags().BoolVar(&useMicrosoft, "microsoft", false, "Sign in with Microsoft via device authorization flow")
	loginCmd.Flags().StringVar(&managedCode, "managed-provider", "", "Print the managed gateway login URL for a provider (aad, google, github)")
}
