// Package devices implements the cardeactl device management commands.
package devices

import (
	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
	"github.com/gauciv/cardea/pkg/sdk"
)

// DevicesCmd groups the Sentry device commands.
var DevicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Manage Sentry devices",
}

func init() {
	DevicesCmd.AddCommand(listCmd)
	DevicesCmd.AddCommand(claimCmd)
	DevicesCmd.AddCommand(removeCmd)
}

// apiClient gates the command behind authentication and returns a
// client carrying the session's credentials.
func apiClient(cmd *cobra.Command) (*sdk.Client, error) {
	a := app.MustFromContext(cmd.Context())
	g, err := a.Guard()
	if err != nil {
		return nil, err
	}
	return g.SDKClient(cmd.Context())
}
