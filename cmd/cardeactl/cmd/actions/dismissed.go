package actions

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var dismissedCmd = &cobra.Command{
	Use:   "dismissed",
	Short: "List dismissed alerts and safe IPs",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		state, err := api.ListDismissed(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list dismissed state: %w", err)
		}

		fmt.Printf("Dismissed alerts: %d\n", len(state.DismissedAlertIDs))
		for _, id := range state.DismissedAlertIDs {
			fmt.Printf("  %d\n", id)
		}
		fmt.Printf("Safe IPs: %d\n", len(state.SafeIPs))
		for _, ip := range state.SafeIPs {
			fmt.Printf("  %s\n", ip)
		}
		return nil
	},
}

var undismissCmd = &cobra.Command{
	Use:   "undismiss <alert-id>",
	Short: "Restore a dismissed alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alertID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid alert id %q", args[0])
		}

		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		if err := api.UndismissAlert(cmd.Context(), alertID); err != nil {
			return fmt.Errorf("failed to restore alert: %w", err)
		}

		fmt.Printf("Alert %d restored\n", alertID)
		return nil
	},
}
