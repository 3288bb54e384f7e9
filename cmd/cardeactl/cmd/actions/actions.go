// Package actions implements the cardeactl threat-response commands.
package actions

import (
	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
	"github.com/gauciv/cardea/pkg/sdk"
)

// ActionsCmd groups the threat-response commands.
var ActionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Respond to threats",
}

func init() {
	ActionsCmd.AddCommand(executeCmd)
	ActionsCmd.AddCommand(dismissedCmd)
	ActionsCmd.AddCommand(undismissCmd)
}

func apiClient(cmd *cobra.Command) (*sdk.Client, error) {
	a := app.MustFromContext(cmd.Context())
	g, err := a.Guard()
	if err != nil {
		return nil, err
	}
	return g.SDKClient(cmd.Context())
}
