package devices

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <device-id>",
	Short: "Unregister a Sentry device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		if err := api.RemoveDevice(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to remove device: %w", err)
		}

		fmt.Printf("Device %s removed\n", args[0])
		return nil
	},
}
