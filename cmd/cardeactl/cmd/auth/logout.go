package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from Cardea",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.MustFromContext(cmd.Context())
		sess, err := a.Session()
		if err != nil {
			return err
		}

		redirect, err := sess.Logout(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}

		fmt.Println("Logged out successfully")
		if redirect != "" {
			fmt.Println("To end the gateway session, open:")
			fmt.Println(redirect)
		}
		return nil
	},
}
