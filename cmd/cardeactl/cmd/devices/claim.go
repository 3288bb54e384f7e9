package devices

import (
	"fmt"

	"github.com/spf13/cobra"
)

var claimCmd = &cobra.Command{
	Use:   "claim <pairing-code>",
	Short: "Claim a Sentry using its pairing code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		result, err := api.ClaimDevice(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to claim device: %w", err)
		}
		if !result.Success {
			return fmt.Errorf("claim rejected: %s", result.Message)
		}

		fmt.Printf("✅ %s\n", result.Message)
		return nil
	},
}
