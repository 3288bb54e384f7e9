// Package alerts implements the cardeactl alert review commands.
package alerts

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
)

var timeRange string

// AlertsCmd groups the alert commands.
var AlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Review security alerts",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.MustFromContext(cmd.Context())
		g, err := a.Guard()
		if err != nil {
			return err
		}
		api, err := g.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		analytics, err := api.GetAnalytics(cmd.Context(), timeRange)
		if err != nil {
			return fmt.Errorf("failed to fetch alerts: %w", err)
		}

		if len(analytics.Alerts) == 0 {
			fmt.Println("No alerts in this time range.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSEVERITY\tTYPE\tTITLE\tSCORE\tTIME")
		for _, alert := range analytics.Alerts {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.0f\t%s\n",
				alert.ID, alert.Severity, alert.AlertType, alert.Title, alert.ThreatScore, alert.Timestamp)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&timeRange, "range", "today", "Time range: hour, today, or week")
	AlertsCmd.AddCommand(listCmd)
}
