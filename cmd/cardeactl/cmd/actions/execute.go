package actions

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/pkg/sdk"
)

var (
	target   string
	alertIDs []int64
	reason   string
	deviceID string
)

var executeCmd = &cobra.Command{
	Use:   "execute <action>",
	Short: "Execute a threat-response action",
	Long: `Executes a threat-response action through the oracle.

Supported actions: block_ip, allow_ip, dismiss, monitor, lockdown.
block_ip, allow_ip and monitor require --target; dismiss requires
--alert-ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := sdk.ActionType(args[0])
		switch action {
		case sdk.ActionBlockIP, sdk.ActionAllowIP, sdk.ActionMonitor:
			if target == "" {
				return fmt.Errorf("%s requires --target", action)
			}
		case sdk.ActionDismiss:
			if len(alertIDs) == 0 {
				return fmt.Errorf("dismiss requires --alert-ids")
			}
		case sdk.ActionLockdown:
		default:
			return fmt.Errorf("unknown action %q", args[0])
		}

		api, err := apiClient(cmd)
		if err != nil {
			return err
		}

		result, err := api.ExecuteAction(cmd.Context(), sdk.ActionRequest{
			ActionType: action,
			Target:     target,
			AlertIDs:   alertIDs,
			Reason:     reason,
			DeviceID:   deviceID,
		})
		if err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
		if !result.Success {
			return fmt.Errorf("action rejected: %s", result.Message)
		}

		fmt.Printf("✅ %s\n", result.Message)
		return nil
	},
}

func init() {
	executeCmd.Flags().StringVar(&target, "target", "", "Target IP address")
	executeCmd.Flags().Int64SliceVar(&alertIDs, "alert-ids", nil, "Alert ids the action applies to")
	executeCmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the action")
	executeCmd.Flags().StringVar(&deviceID, "device", "", "Sentry device id to execute against")
}
