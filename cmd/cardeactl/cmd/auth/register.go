package auth

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
	"github.com/gauciv/cardea/internal/config"
	"github.com/gauciv/cardea/internal/localcred"
	"github.com/gauciv/cardea/pkg/sdk"
)

const maxOTPAttempts = 5

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a local-credential account",
	Long: `Registers a new account with the Cardea backend.

Registration happens in three phases:
1. Details: email and name are submitted and a verification code is
   emailed to the address.
2. Verification: the six-digit code is entered (type "resend" to request
   a fresh one).
3. Password: a password is chosen and the account is activated. The CLI
   is logged in as the new user on success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		if cfg.NonInteractive {
			return fmt.Errorf("register is interactive; run without --non-interactive")
		}

		a := app.MustFromContext(cmd.Context())
		st, err := a.Store()
		if err != nil {
			return err
		}
		local := localcred.New(a.API(), st)

		email, err := pterm.DefaultInteractiveTextInput.Show("Email")
		if err != nil {
			return err
		}
		givenName, err := pterm.DefaultInteractiveTextInput.Show("First name")
		if err != nil {
			return err
		}
		familyName, err := pterm.DefaultInteractiveTextInput.Show("Last name")
		if err != nil {
			return err
		}

		reg, err := local.StartRegistration(cmd.Context(), email, givenName, familyName)
		if err != nil {
			return err
		}
		pterm.Info.Printf("A verification code was sent to %s\n", email)

		if err := verifyLoop(cmd, reg); err != nil {
			return err
		}
		pterm.Success.Println("Email verified")

		password, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password (min 8 characters)")
		if err != nil {
			return err
		}
		confirm, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Confirm password")
		if err != nil {
			return err
		}

		id, err := local.Complete(cmd.Context(), reg, password, confirm)
		if err != nil {
			return err
		}

		sess, err := a.Session()
		if err != nil {
			return err
		}
		sess.Adopt(id)

		fmt.Println("------------------------------------------------------------")
		fmt.Printf("✅ Registration complete!\n")
		fmt.Printf("Logged in as: %s\n", id.DisplayLabel)
		return nil
	},
}

// verifyLoop collects the six-digit code through the slot model used by
// the dashboard's verification screen, so pasted codes distribute
// across slots and stray characters are dropped.
func verifyLoop(cmd *cobra.Command, reg *localcred.Registration) error {
	for attempt := 0; attempt < maxOTPAttempts; attempt++ {
		raw, err := pterm.DefaultInteractiveTextInput.Show("Verification code (or \"resend\")")
		if err != nil {
			return err
		}
		if raw == "resend" {
			if err := reg.Resend(cmd.Context()); err != nil {
				return err
			}
			pterm.Info.Println("A new code was sent")
			continue
		}

		input := localcred.NewOTPInput()
		input.Type(raw)
		code, complete := input.Code()
		if !complete {
			pterm.Warning.Printf("The code must be %d digits\n", localcred.CodeLength)
			continue
		}

		err = reg.Verify(cmd.Context(), code)
		if err == nil {
			return nil
		}
		if errors.Is(err, sdk.ErrInvalidOrExpiredCode) {
			pterm.Warning.Println("Invalid or expired code, try again")
			continue
		}
		return err
	}
	return fmt.Errorf("too many failed verification attempts: %w", sdk.ErrInvalidOrExpiredCode)
}
