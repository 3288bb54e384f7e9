package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/cmd/cardeactl/cmd/actions"
	"github.com/gauciv/cardea/cmd/cardeactl/cmd/alerts"
	"github.com/gauciv/cardea/cmd/cardeactl/cmd/analytics"
	"github.com/gauciv/cardea/cmd/cardeactl/cmd/auth"
	"github.com/gauciv/cardea/cmd/cardeactl/cmd/devices"
	"github.com/gauciv/cardea/internal/app"
	"github.com/gauciv/cardea/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cardeactl",
	Short: "Cardea CLI - home network security client",
	Long: `cardeactl is the command-line client for Cardea, the home network
security platform. Use it to sign in, manage Sentry devices, review
alerts, and respond to threats.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("CARDEA_NON_INTERACTIVE") == "1" {
			_ = cmd.Flags().Set("non-interactive", "true")
		}

		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		ctx := config.IntoContext(cmd.Context(), cfg)
		ctx = app.IntoContext(ctx, app.New(cfg))
		cmd.SetContext(ctx)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:8000", "Cardea oracle API URL")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts (also set via CARDEA_NON_INTERACTIVE=1)")

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(devices.DevicesCmd)
	rootCmd.AddCommand(alerts.AlertsCmd)
	rootCmd.AddCommand(actions.ActionsCmd)
	rootCmd.AddCommand(analytics.AnalyticsCmd)
}
